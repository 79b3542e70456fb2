package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// missing marks a coefficient a model does not use.
const missing = "---"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})
}

func format(v float64, decimals int) string {
	if math.IsNaN(v) {
		return missing
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// CorrelationTable renders a correlation matrix with three decimals.
func CorrelationTable(c *Correlations) string {
	t := newTable(append([]string{""}, c.Names...)...)
	for i, name := range c.Names {
		row := make([]string, 0, len(c.Names)+1)
		row = append(row, name)
		for _, v := range c.Matrix[i] {
			row = append(row, format(float64(v), 3))
		}
		t.Row(row...)
	}
	return t.String()
}

// RegressionTable renders coefficients, standard errors and Z scores with
// two decimals.
func RegressionTable(rows []CoefficientRow) string {
	t := newTable("", "Coefficient", "Std. Error", "Z Score")
	for _, r := range rows {
		t.Row(r.Name,
			format(float64(r.Coefficient), 2),
			format(float64(r.StdError), 2),
			format(float64(r.ZScore), 2),
		)
	}
	return t.String()
}

// ShrinkageTable renders one column per model: its coefficients, then its
// test error and the standard error of that estimate. Columns a model does
// not use show as "---".
func ShrinkageTable(models []ModelSummary) string {
	headers := []string{""}
	for _, m := range models {
		headers = append(headers, m.Name)
	}
	t := newTable(headers...)

	for _, name := range coefficientNames(models) {
		row := []string{name}
		for _, m := range models {
			row = append(row, format(m.Coefficient(name), 3))
		}
		t.Row(row...)
	}

	testRow := []string{"Test Error"}
	stdRow := []string{"Std Error"}
	for _, m := range models {
		testRow = append(testRow, format(float64(m.TestError), 3))
		stdRow = append(stdRow, format(float64(m.StdError), 3))
	}
	t.Row(testRow...)
	t.Row(stdRow...)
	return t.String()
}

// PathTable renders the best subset and its RSS for each size.
func PathTable(points []PathPoint) string {
	t := newTable("Size", "RSS", "Columns")
	for _, p := range points {
		t.Row(fmt.Sprint(p.Size), format(float64(p.RSS), 3), strings.Join(p.Names, ", "))
	}
	return t.String()
}

// coefficientNames is the union of the models' columns in first-seen order.
func coefficientNames(models []ModelSummary) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range models {
		for _, name := range m.Columns {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
