package views

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

func TestBuildChartsOrdersKnownKeysFirst(t *testing.T) {
	charts := BuildCharts(model.Analytics{
		StatusBreakdown: map[model.InvoiceStatus]int{
			model.StatusDefaulted: 1,
			"Archived":            4,
			model.StatusPending:   3,
			model.StatusPaid:      2,
		},
		CurrencyBreakdown: map[model.Currency]float64{
			"EUR":             5,
			model.CurrencyLYD: 7.5,
			model.CurrencyUSD: 100,
		},
		MonthlyTrends: []model.MonthlyTrend{
			{Month: "Jan 2025", Count: 2, Amount: 150},
			{Month: "Feb 2025", Count: 0, Amount: 0},
		},
	})

	if diff := cmp.Diff([]string{"Pending", "Paid", "Defaulted", "Archived"}, charts.Status.Data.Labels); diff != "" {
		t.Fatalf("status labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{3, 2, 1, 4}, charts.Status.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("status values mismatch (-want +got):\n%s", diff)
	}
	if charts.Status.Type != "pie" {
		t.Fatalf("expected pie chart, got %q", charts.Status.Type)
	}

	if diff := cmp.Diff([]string{"USD", "LYD", "EUR"}, charts.Currency.Data.Labels); diff != "" {
		t.Fatalf("currency labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 7.5, 5}, charts.Currency.Data.Datasets[0].Data); diff != "" {
		t.Fatalf("currency values mismatch (-want +got):\n%s", diff)
	}

	monthly := charts.Monthly
	if diff := cmp.Diff([]string{"Jan 2025", "Feb 2025"}, monthly.Data.Labels); diff != "" {
		t.Fatalf("monthly labels mismatch (-want +got):\n%s", diff)
	}
	if len(monthly.Data.Datasets) != 2 {
		t.Fatalf("expected two monthly series, got %d", len(monthly.Data.Datasets))
	}
	if monthly.Data.Datasets[0].YAxisID != "y" || monthly.Data.Datasets[1].YAxisID != "y1" {
		t.Fatalf("unexpected axis binding: %+v", monthly.Data.Datasets)
	}
	if diff := cmp.Diff([]float64{150, 0}, monthly.Data.Datasets[1].Data); diff != "" {
		t.Fatalf("revenue series mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildChartsEmptyAnalytics(t *testing.T) {
	charts := BuildCharts(model.Analytics{})
	if len(charts.Status.Data.Labels) != 0 || len(charts.Currency.Data.Labels) != 0 || len(charts.Monthly.Data.Labels) != 0 {
		t.Fatalf("expected empty charts, got %+v", charts)
	}

	raw, err := json.Marshal(charts.Status)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data := decoded["data"].(map[string]any)
	if _, ok := data["labels"].([]any); !ok {
		t.Fatalf("labels must encode as an array, got %v", data["labels"])
	}
}

func TestOrderedStatuses(t *testing.T) {
	got := OrderedStatuses(map[model.InvoiceStatus]int{
		model.StatusPaid:             1,
		model.StatusPaymentSubmitted: 2,
		"Voided":                     5,
		"Archived":                   0,
	})
	want := []StatusCount{
		{Status: model.StatusPaymentSubmitted, Count: 2},
		{Status: model.StatusPaid, Count: 1},
		{Status: "Archived", Count: 0},
		{Status: "Voided", Count: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ordered statuses mismatch (-want +got):\n%s", diff)
	}
}
