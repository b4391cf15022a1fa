// Package pdf renders a printable copy of an invoice.
package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

const dateLayout = "2006-01-02"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename returns the download name for inv.
func Filename(inv model.Invoice) string {
	name := inv.InvoiceNumber
	if name == "" {
		name = "invoice-" + strconv.FormatInt(inv.ID, 10)
	}
	return unsafeFilename.ReplaceAllString(name, "_") + ".pdf"
}

// Render lays inv out on one A4 page.
func Render(inv model.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("Invoice "+inv.InvoiceNumber, true)
	doc.SetCreator("InvoiceBox Inc", true)
	if !inv.DateCreated.IsZero() {
		doc.SetCreationDate(inv.DateCreated.Time)
	}
	doc.AddPage()

	doc.SetFont("Arial", "B", 20)
	doc.CellFormat(0, 12, "InvoiceBox Inc", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 12)
	doc.CellFormat(0, 8, tr("Invoice "+inv.InvoiceNumber), "B", 1, "L", false, 0, "")
	doc.Ln(4)

	rows := [][2]string{
		{"Title", inv.Title},
		{"Provider", inv.ProviderName},
		{"Purchaser", inv.PurchaserName},
		{"Amount", fmt.Sprintf("%.2f %s", inv.Amount, inv.Currency)},
		{"Status", string(inv.Status)},
		{"Created", formatDate(inv.DateCreated)},
	}
	if ref := inv.Reference(); ref != "" {
		rows = append(rows, [2]string{"Payment reference", ref})
	}
	if inv.PaymentDate != nil && !inv.PaymentDate.IsZero() {
		rows = append(rows, [2]string{"Payment date", formatDate(*inv.PaymentDate)})
	}

	for _, row := range rows {
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "", 11)
		doc.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	if inv.Description != "" {
		doc.Ln(4)
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(0, 8, "Description", "", 1, "L", false, 0, "")
		doc.SetFont("Arial", "", 11)
		doc.MultiCell(0, 6, tr(inv.Description), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}
	return buf.Bytes(), nil
}

func formatDate(ts model.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(dateLayout)
}
