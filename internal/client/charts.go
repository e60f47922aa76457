package client

import "fintrack/internal/models"

// monthLabels are the twelve calendar month labels for the line chart.
var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// BarChart compares two totals side by side.
type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// PieChart holds one slice per category with a non-zero total.
type PieChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

// LineChart holds income and expense series bucketed per calendar month.
type LineChart struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
}

// ChartData bundles the three chart series derived from the current entries.
type ChartData struct {
	Bar  BarChart  `json:"bar"`
	Pie  PieChart  `json:"pie"`
	Line LineChart `json:"line"`
}

// BarChart returns total income vs total expense.
func (s *Store) BarChart() BarChart {
	return BarChart{
		Labels: []string{"Receitas", "Despesas"},
		Values: []float64{s.TotalIncome(), s.TotalExpense()},
		Colors: []string{"#4CAF50", "#F44336"},
	}
}

// PieChart returns one slice per category with entries and a non-zero total,
// colored with the category's display color.
func (s *Store) PieChart() PieChart {
	totals := s.CategoryTotals()
	chart := PieChart{
		Labels: make([]string, 0, len(totals)),
		Values: make([]float64, 0, len(totals)),
		Colors: make([]string, 0, len(totals)),
	}
	for _, ct := range totals {
		chart.Labels = append(chart.Labels, ct.Name)
		chart.Values = append(chart.Values, ct.Total)
		chart.Colors = append(chart.Colors, ct.Color)
	}
	return chart
}

// LineChart accumulates income and expense per calendar month-of-year.
// Bucketing ignores the year: entries from different years that share a
// month land in the same bucket.
func (s *Store) LineChart() LineChart {
	income := make([]float64, 12)
	expense := make([]float64, 12)

	for _, e := range s.entries {
		month := int(e.Date.Month()) - 1
		if e.Type == models.TransactionTypeIncome {
			income[month] += e.Amount
		} else {
			expense[month] += e.Amount
		}
	}

	return LineChart{
		Labels:  monthLabels,
		Income:  income,
		Expense: expense,
	}
}

// ChartData returns all chart series in one shot.
func (s *Store) ChartData() ChartData {
	return ChartData{
		Bar:  s.BarChart(),
		Pie:  s.PieChart(),
		Line: s.LineChart(),
	}
}
