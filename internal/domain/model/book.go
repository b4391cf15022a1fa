package model

import "sync"

// InvoiceBook holds the invoices of one list view keyed by id, keeping the
// order in which the API returned them for display. It is safe for
// concurrent use.
type InvoiceBook struct {
	mu    sync.RWMutex
	byID  map[int64]Invoice
	order []int64
}

// NewInvoiceBook indexes invoices by id. Later duplicates replace earlier ones
// in place.
func NewInvoiceBook(invoices []Invoice) *InvoiceBook {
	b := &InvoiceBook{
		byID:  make(map[int64]Invoice, len(invoices)),
		order: make([]int64, 0, len(invoices)),
	}
	for _, inv := range invoices {
		if _, ok := b.byID[inv.ID]; !ok {
			b.order = append(b.order, inv.ID)
		}
		b.byID[inv.ID] = inv
	}
	return b
}

// Get returns the invoice with id.
func (b *InvoiceBook) Get(id int64) (Invoice, bool) {
	if b == nil {
		return Invoice{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	inv, ok := b.byID[id]
	return inv, ok
}

// Replace overwrites the entry with the same id. Unknown ids are ignored and
// reported as false.
func (b *InvoiceBook) Replace(inv Invoice) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[inv.ID]; !ok {
		return false
	}
	b.byID[inv.ID] = inv
	return true
}

// List returns a copy of the invoices in display order.
func (b *InvoiceBook) List() []Invoice {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Invoice, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// Len returns the number of held invoices.
func (b *InvoiceBook) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
