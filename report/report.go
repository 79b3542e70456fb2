// Package report turns fits, evaluations and searches into printable tables,
// JSON documents and charts.
package report

import (
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/evaluation"
	"github.com/YuminosukeSato/eslgo/linear"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/stats"
	"github.com/YuminosukeSato/eslgo/subset"
)

// Float is a float64 that encodes NaN and ±Inf as JSON null.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler; null decodes as NaN.
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errors.Wrap(err, "report: invalid number")
	}
	*f = Float(v)
	return nil
}

// CoefficientRow is one line of a regression table.
type CoefficientRow struct {
	Name        string `json:"name"`
	Coefficient Float  `json:"coefficient"`
	StdError    Float  `json:"std_error"`
	ZScore      Float  `json:"z_score"`
}

// Coefficients lists the coefficients of fit with their standard errors and
// Z scores.
func Coefficients(fit *linear.Fit) []CoefficientRow {
	z := fit.ZScores()
	rows := make([]CoefficientRow, len(fit.Columns))
	for j, name := range fit.Columns {
		rows[j] = CoefficientRow{
			Name:        name,
			Coefficient: Float(fit.Betahat[j]),
			StdError:    Float(fit.StdErrors[j]),
			ZScore:      Float(z[j]),
		}
	}
	return rows
}

// ModelSummary is one column of the method comparison table.
type ModelSummary struct {
	Name         string   `json:"name"`
	Columns      []string `json:"columns"`
	Coefficients []Float  `json:"coefficients"`
	TestError    Float    `json:"test_error"`
	StdError     Float    `json:"std_error"`
}

// Summarize pairs a model's coefficients with its held-out error.
func Summarize(name string, p model.Predictor, res evaluation.Result) ModelSummary {
	coef := p.Coefficients()
	out := make([]Float, len(coef))
	for i, c := range coef {
		out[i] = Float(c)
	}
	return ModelSummary{
		Name:         name,
		Columns:      p.Names(),
		Coefficients: out,
		TestError:    Float(res.TestError),
		StdError:     Float(res.StdError),
	}
}

// Coefficient returns the named coefficient, or NaN when the model does not
// use that column.
func (m ModelSummary) Coefficient(name string) float64 {
	for i, col := range m.Columns {
		if col == name {
			return float64(m.Coefficients[i])
		}
	}
	return math.NaN()
}

// Correlations is a serialisable correlation table.
type Correlations struct {
	Names  []string  `json:"names"`
	Matrix [][]Float `json:"matrix"`
}

// NewCorrelations copies a stats.CorrelationTable.
func NewCorrelations(ct *stats.CorrelationTable) *Correlations {
	rows := ct.Rows()
	matrix := make([][]Float, len(rows))
	for i, row := range rows {
		matrix[i] = make([]Float, len(row))
		for j, v := range row {
			matrix[i][j] = Float(v)
		}
	}
	return &Correlations{Names: ct.Names(), Matrix: matrix}
}

// PathPoint is the best subset of one size.
type PathPoint struct {
	Size  int      `json:"size"`
	Names []string `json:"names"`
	RSS   Float    `json:"rss"`
}

// NewPath converts the result of subset.Path.
func NewPath(results []*subset.Result) []PathPoint {
	points := make([]PathPoint, len(results))
	for i, r := range results {
		points[i] = PathPoint{Size: r.Size, Names: r.Names, RSS: Float(r.RSS)}
	}
	return points
}

// Document is everything one CLI run produced.
type Document struct {
	RunID        string           `json:"run_id"`
	Correlations *Correlations    `json:"correlations,omitempty"`
	Regression   []CoefficientRow `json:"regression,omitempty"`
	Shrinkage    []ModelSummary   `json:"shrinkage,omitempty"`
	Path         []PathPoint      `json:"path,omitempty"`
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "report: encode document")
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "report: decode document")
	}
	return &doc, nil
}
