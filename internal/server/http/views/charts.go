package views

import (
	"sort"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// ChartConfig is a Chart.js configuration object. Templates emit it inside a
// script element, where html/template encodes it as JSON.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

// ChartData holds the labels and series of a chart.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one Chart.js series.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     any       `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	YAxisID         string    `json:"yAxisID,omitempty"`
}

// Charts are the three analytics charts rendered by the dashboard and the
// analytics page.
type Charts struct {
	Status   ChartConfig
	Currency ChartConfig
	Monthly  ChartConfig
}

// StatusCount is one summary card of the analytics page.
type StatusCount struct {
	Status model.InvoiceStatus
	Count  int
}

var (
	statusFill   = []string{"#FCD34D", "#3B82F6", "#10B981", "#EF4444"}
	statusBorder = []string{"#F59E0B", "#2563EB", "#059669", "#DC2626"}

	currencyFill   = []string{"#3B82F6", "#8B5CF6", "#F59E0B"}
	currencyBorder = []string{"#2563EB", "#7C3AED", "#D97706"}
)

func legendOptions() map[string]any {
	return map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]any{
			"legend": map[string]any{"position": "top"},
		},
	}
}

func axis(title string, extra map[string]any) map[string]any {
	out := map[string]any{
		"display": true,
		"title":   map[string]any{"display": true, "text": title},
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// BuildCharts projects the analytics payload into chart configurations. It
// only reorders keys and extracts values.
func BuildCharts(a model.Analytics) Charts {
	return Charts{
		Status:   statusChart(a.StatusBreakdown),
		Currency: currencyChart(a.CurrencyBreakdown),
		Monthly:  monthlyChart(a.MonthlyTrends),
	}
}

// OrderedStatuses returns the status breakdown in lifecycle order followed
// by any statuses the API added, sorted by name.
func OrderedStatuses(breakdown map[model.InvoiceStatus]int) []StatusCount {
	out := make([]StatusCount, 0, len(breakdown))
	for _, status := range orderedKeys(breakdown, model.Statuses) {
		out = append(out, StatusCount{Status: status, Count: breakdown[status]})
	}
	return out
}

func statusChart(breakdown map[model.InvoiceStatus]int) ChartConfig {
	keys := orderedKeys(breakdown, model.Statuses)
	labels := make([]string, 0, len(keys))
	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, string(k))
		values = append(values, float64(breakdown[k]))
	}
	return ChartConfig{
		Type: "pie",
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Data:            values,
				BackgroundColor: statusFill,
				BorderColor:     statusBorder,
				BorderWidth:     2,
			}},
		},
		Options: legendOptions(),
	}
}

func currencyChart(breakdown map[model.Currency]float64) ChartConfig {
	keys := orderedKeys(breakdown, model.Currencies)
	labels := make([]string, 0, len(keys))
	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, string(k))
		values = append(values, breakdown[k])
	}
	return ChartConfig{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Revenue",
				Data:            values,
				BackgroundColor: currencyFill,
				BorderColor:     currencyBorder,
				BorderWidth:     2,
			}},
		},
		Options: legendOptions(),
	}
}

func monthlyChart(trends []model.MonthlyTrend) ChartConfig {
	labels := make([]string, 0, len(trends))
	counts := make([]float64, 0, len(trends))
	amounts := make([]float64, 0, len(trends))
	for _, m := range trends {
		labels = append(labels, m.Month)
		counts = append(counts, float64(m.Count))
		amounts = append(amounts, m.Amount)
	}
	return ChartConfig{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []Dataset{
				{
					Label:           "Invoice Count",
					Data:            counts,
					BorderColor:     "#3B82F6",
					BackgroundColor: "rgba(59, 130, 246, 0.1)",
					Tension:         0.4,
					YAxisID:         "y",
				},
				{
					Label:           "Revenue ($)",
					Data:            amounts,
					BorderColor:     "#10B981",
					BackgroundColor: "rgba(16, 185, 129, 0.1)",
					Tension:         0.4,
					YAxisID:         "y1",
				},
			},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"interaction":         map[string]any{"mode": "index", "intersect": false},
			"scales": map[string]any{
				"x": axis("Month", nil),
				"y": axis("Invoice Count", map[string]any{"type": "linear", "position": "left"}),
				"y1": axis("Revenue ($)", map[string]any{
					"type":     "linear",
					"position": "right",
					"grid":     map[string]any{"drawOnChartArea": false},
				}),
			},
		},
	}
}

// orderedKeys returns the keys of m present in known, in that order, then
// the remaining keys sorted.
func orderedKeys[K ~string, V any](m map[K]V, known []K) []K {
	out := make([]K, 0, len(m))
	seen := make(map[K]bool, len(known))
	for _, k := range known {
		seen[k] = true
		if _, ok := m[k]; ok {
			out = append(out, k)
		}
	}
	var extra []K
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
