// Package dataset loads the fixed-schema observation table and exposes it as
// an immutable DesignMatrix / Response pair with a train/test mask.
package dataset

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// Schema describes the layout of the observation table.
type Schema struct {
	// Response is the name of the outcome column.
	Response string `yaml:"response" json:"response"`
	// Flag is the name of the train/test split column.
	Flag string `yaml:"flag" json:"flag"`
	// TrainValue and TestValue are the literals in Flag marking each split.
	TrainValue string `yaml:"train_value" json:"train_value"`
	TestValue  string `yaml:"test_value" json:"test_value"`
	// Delimiter separates fields.
	Delimiter rune `yaml:"delimiter" json:"delimiter"`
	// DropFirstColumn discards a leading row-index column.
	DropFirstColumn bool `yaml:"drop_first_column" json:"drop_first_column"`
	// Ignore lists additional columns that are neither predictors nor response.
	Ignore []string `yaml:"ignore" json:"ignore"`
}

// ProstateSchema is the layout of the prostate cancer data
// (lcavol ... pgg45, lpsa, train).
func ProstateSchema() Schema {
	return Schema{
		Response:        "lpsa",
		Flag:            "train",
		TrainValue:      "T",
		TestValue:       "F",
		Delimiter:       '\t',
		DropFirstColumn: true,
	}
}

// Validate checks that the schema names its columns and split literals.
func (s Schema) Validate() error {
	switch {
	case s.Response == "":
		return errors.NewInvalidParameterError("dataset.Schema", "response", s.Response, "response column is required")
	case s.Flag == "":
		return errors.NewInvalidParameterError("dataset.Schema", "flag", s.Flag, "split flag column is required")
	case s.Flag == s.Response:
		return errors.NewInvalidParameterError("dataset.Schema", "flag", s.Flag, "flag and response must differ")
	case s.TrainValue == "" || s.TestValue == "" || s.TrainValue == s.TestValue:
		return errors.NewInvalidParameterError("dataset.Schema", "train_value", s.TrainValue, "train and test literals must be distinct and non-empty")
	case s.Delimiter == 0:
		return errors.NewInvalidParameterError("dataset.Schema", "delimiter", s.Delimiter, "delimiter is required")
	}
	return nil
}

// Dataset is the loaded table: all predictors, the response and the split
// mask. It is never mutated after Load returns.
type Dataset struct {
	X     *DesignMatrix
	Y     *Response
	train []bool
}

// Split is one side of the train/test partition.
type Split struct {
	X *DesignMatrix
	Y *Response
}

// LoadFile opens path and calls Load.
func LoadFile(path string, schema Schema) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewModelError("dataset.LoadFile", "open failed", err)
	}
	defer f.Close()
	return Load(f, schema)
}

// Load reads a delimited table with a header row. Every column other than
// the response, the flag, and the ignored ones is a predictor and must be
// numeric.
func Load(r io.Reader, schema Schema) (*Dataset, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(schema.Delimiter),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{schema.Flag: series.String}),
	)
	if df.Err != nil {
		return nil, errors.NewModelError("dataset.Load", "read failed", df.Err)
	}
	if schema.DropFirstColumn {
		df = df.Drop(0)
		if df.Err != nil {
			return nil, errors.NewModelError("dataset.Load", "drop index column failed", df.Err)
		}
	}
	if df.Nrow() == 0 {
		return nil, errors.NewModelError("dataset.Load", "no rows", errors.ErrEmptyData)
	}

	skip := map[string]struct{}{schema.Response: {}, schema.Flag: {}}
	for _, name := range schema.Ignore {
		skip[name] = struct{}{}
	}

	names := df.Names()
	var missing []string
	for _, required := range []string{schema.Response, schema.Flag} {
		if !contains(names, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaMismatchError("dataset.Load", missing, 2, 2-len(missing))
	}

	var (
		predictors []string
		columns    [][]float64
	)
	for _, name := range names {
		if _, ok := skip[name]; ok {
			continue
		}
		values := df.Col(name).Float()
		if err := errors.CheckNumericalStability("dataset.Load:"+name, values); err != nil {
			return nil, err
		}
		predictors = append(predictors, name)
		columns = append(columns, values)
	}
	if len(predictors) == 0 {
		return nil, errors.NewModelError("dataset.Load", "no predictor columns", errors.ErrEmptyData)
	}

	X, err := NewDesignMatrix(predictors, columns)
	if err != nil {
		return nil, err
	}

	yValues := df.Col(schema.Response).Float()
	if err := errors.CheckNumericalStability("dataset.Load:"+schema.Response, yValues); err != nil {
		return nil, err
	}
	Y, err := NewResponse(schema.Response, yValues)
	if err != nil {
		return nil, err
	}

	flags := df.Col(schema.Flag).Records()
	train := make([]bool, len(flags))
	for i, flag := range flags {
		switch flag {
		case schema.TrainValue:
			train[i] = true
		case schema.TestValue:
		default:
			return nil, errors.NewValueError("dataset.Load",
				"unexpected value "+flag+" in column "+schema.Flag+" (want "+schema.TrainValue+" or "+schema.TestValue+")")
		}
	}

	return &Dataset{X: X, Y: Y, train: train}, nil
}

// TrainMask returns a copy of the split mask; true marks training rows.
func (d *Dataset) TrainMask() []bool {
	return append([]bool(nil), d.train...)
}

// TestMask returns the complement of TrainMask.
func (d *Dataset) TestMask() []bool {
	mask := make([]bool, len(d.train))
	for i, t := range d.train {
		mask[i] = !t
	}
	return mask
}

// Training returns the rows flagged as training data.
func (d *Dataset) Training() (Split, error) {
	return d.split(d.train)
}

// Testing returns the held-out rows.
func (d *Dataset) Testing() (Split, error) {
	return d.split(d.TestMask())
}

// WithX returns a Dataset sharing Y and the split mask but using X as the
// predictors, e.g. after standardisation or adding an intercept.
func (d *Dataset) WithX(X *DesignMatrix) (*Dataset, error) {
	if err := CheckAligned("dataset.WithX", X, d.Y); err != nil {
		return nil, err
	}
	return &Dataset{X: X, Y: d.Y, train: d.train}, nil
}

func (d *Dataset) split(mask []bool) (Split, error) {
	X, err := d.X.Rows(mask)
	if err != nil {
		return Split{}, err
	}
	Y, err := d.Y.Rows(mask)
	if err != nil {
		return Split{}, err
	}
	return Split{X: X, Y: Y}, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
