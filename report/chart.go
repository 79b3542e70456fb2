package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
	barWidth    = 12
)

// CoefficientChartPNG draws the coefficients of every model as grouped bars
// and writes a PNG image to w. Coefficients a model does not use are drawn
// as zero.
func CoefficientChartPNG(w io.Writer, models []ModelSummary) error {
	if len(models) == 0 {
		return errors.NewValueError("report.CoefficientChartPNG", "no models to plot")
	}
	names := coefficientNames(models)

	p := plot.New()
	p.Title.Text = "Coefficients"
	p.Y.Label.Text = "estimate"

	width := vg.Points(barWidth)
	for i, m := range models {
		values := make(plotter.Values, len(names))
		for j, name := range names {
			values[j] = zeroIfMissing(m.Coefficient(name))
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return errors.Wrapf(err, "report: bar chart for %s", m.Name)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = width * vg.Length(2*i-len(models)+1) / 2
		p.Add(bars)
		p.Legend.Add(m.Name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return errors.Wrap(err, "report: render png")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "report: write png")
	}
	return nil
}

// ComparisonPage writes an HTML page with the models' coefficients, their
// test errors and, when given, the best-subset RSS curve.
func ComparisonPage(w io.Writer, models []ModelSummary, path []PathPoint) error {
	if len(models) == 0 && len(path) == 0 {
		return errors.NewValueError("report.ComparisonPage", "nothing to chart")
	}

	page := components.NewPage()
	page.PageTitle = "eslgo"
	if len(models) > 0 {
		page.AddCharts(coefficientBar(models), testErrorBar(models))
	}
	if len(path) > 0 {
		page.AddCharts(pathLine(path))
	}
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "report: render html")
	}
	return nil
}

func coefficientBar(models []ModelSummary) *charts.Bar {
	names := coefficientNames(models)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Coefficients",
			},
		),
	)
	bar.SetXAxis(names)
	for _, m := range models {
		data := make([]opts.BarData, 0, len(names))
		for _, name := range names {
			data = append(data, opts.BarData{Value: zeroIfMissing(m.Coefficient(name))})
		}
		bar.AddSeries(m.Name, data)
	}
	return bar
}

func testErrorBar(models []ModelSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Test error",
				Subtitle: "mean squared error on held-out rows",
			},
		),
	)
	labels := make([]string, 0, len(models))
	testErr := make([]opts.BarData, 0, len(models))
	stdErr := make([]opts.BarData, 0, len(models))
	for _, m := range models {
		labels = append(labels, m.Name)
		testErr = append(testErr, opts.BarData{Value: zeroIfMissing(float64(m.TestError))})
		stdErr = append(stdErr, opts.BarData{Value: zeroIfMissing(float64(m.StdError))})
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Test Error", testErr)
	bar.AddSeries("Std Error", stdErr)
	return bar
}

func pathLine(path []PathPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Best subset RSS by size",
			},
		),
	)
	sizes := make([]string, 0, len(path))
	data := make([]opts.LineData, 0, len(path))
	for _, p := range path {
		sizes = append(sizes, fmt.Sprint(p.Size))
		data = append(data, opts.LineData{Value: float64(p.RSS)})
	}
	line.SetXAxis(sizes)
	line.AddSeries("RSS", data)
	return line
}

func zeroIfMissing(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
