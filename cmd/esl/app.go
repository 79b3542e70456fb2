package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/eslgo/config"
	"github.com/YuminosukeSato/eslgo/core/model"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/evaluation"
	"github.com/YuminosukeSato/eslgo/linear"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/pkg/log"
	"github.com/YuminosukeSato/eslgo/preprocessing"
	"github.com/YuminosukeSato/eslgo/report"
	"github.com/YuminosukeSato/eslgo/stats"
	"github.com/YuminosukeSato/eslgo/subset"
)

// Names of the compared methods, in table order.
const (
	methodLS         = "LS"
	methodBestSubset = "Best Subset"
)

// app runs the analyses of one invocation and collects their output.
type app struct {
	cfg    *config.Config
	logger log.Logger
	out    io.Writer
	doc    *report.Document

	raw      *dataset.Dataset // as loaded
	prepared *dataset.Dataset // standardised, with intercept

	profile interface{ Stop() } // CPU profile, nil unless requested
}

func newApp(cfg *config.Config, logger log.Logger, out io.Writer) *app {
	runID := uuid.NewString()
	return &app{
		cfg:    cfg,
		logger: logger.With(log.EstimatorIDKey, runID),
		out:    out,
		doc:    &report.Document{RunID: runID},
	}
}

// run executes steps in order. A failing or panicking step stops the run,
// is logged, and ends the CPU profile so it is flushed before exit.
func (a *app) run(op string, steps ...func(*app) error) (err error) {
	defer func() {
		if err != nil {
			a.logger.Error("command failed", log.ErrAttrKey, err)
			a.stopProfile()
		}
	}()
	defer errors.Recover(&err, op)

	for _, step := range steps {
		if err := step(a); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) stopProfile() {
	if a.profile != nil {
		a.profile.Stop()
		a.profile = nil
	}
}

// load reads the data file once and prepares the design matrix used by the
// regression commands.
func (a *app) load() error {
	if a.raw != nil {
		return nil
	}
	schema, err := a.cfg.Schema()
	if err != nil {
		return err
	}
	start := time.Now()
	raw, err := dataset.LoadFile(a.cfg.Data.Path, schema)
	if err != nil {
		return err
	}
	rows, cols := raw.X.Dims()
	a.logger.Info("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, a.cfg.Data.Path,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	// Standardisation uses every row, training and held-out alike.
	X := raw.X
	if a.cfg.Model.Standardize {
		scaler := preprocessing.NewStandardScaler(a.cfg.Model.Ddof)
		if X, err = scaler.FitTransform(X); err != nil {
			return err
		}
		a.logger.Debug("predictors standardised",
			log.ModelNameKey, scaler.String(),
			log.EstimatorIDKey, scaler.ID(),
		)
	}
	if a.cfg.Model.Intercept {
		if X, err = X.WithIntercept(); err != nil {
			return err
		}
	}
	prepared, err := raw.WithX(X)
	if err != nil {
		return err
	}
	a.raw, a.prepared = raw, prepared
	return nil
}

func (a *app) correlations() error {
	if err := a.load(); err != nil {
		return err
	}
	train, err := a.raw.Training()
	if err != nil {
		return err
	}
	ct, err := stats.Correlations(train.X, train.Y)
	if err != nil {
		return err
	}
	a.doc.Correlations = report.NewCorrelations(ct)
	a.print("Data correlations", report.CorrelationTable(a.doc.Correlations))
	return nil
}

func (a *app) regression() error {
	if err := a.load(); err != nil {
		return err
	}
	train, err := a.prepared.Training()
	if err != nil {
		return err
	}
	fit, err := a.fitLS(train)
	if err != nil {
		return err
	}
	a.doc.Regression = report.Coefficients(fit)
	a.print("Least squares regression", report.RegressionTable(a.doc.Regression))
	return nil
}

func (a *app) shrinkage() error {
	if err := a.load(); err != nil {
		return err
	}
	train, err := a.prepared.Training()
	if err != nil {
		return err
	}
	test, err := a.prepared.Testing()
	if err != nil {
		return err
	}

	ls, err := a.fitLS(train)
	if err != nil {
		return err
	}
	best, err := subset.BestSubset(train.X, train.Y, a.cfg.Model.SubsetSize, a.subsetOptions()...)
	if err != nil {
		return err
	}
	a.logger.Info("best subset selected",
		log.ModelNameKey, methodBestSubset,
		log.SubsetSizeKey, best.Size,
		log.ColumnsKey, best.Names,
		log.RSSKey, best.RSS,
		log.EvaluatedKey, best.Evaluated,
	)

	models := map[string]model.Predictor{methodLS: ls, methodBestSubset: best.Fit}
	results, err := evaluation.Compare(models, test.X, test.Y, methodLS, methodBestSubset)
	if err != nil {
		return err
	}

	summaries := make([]report.ModelSummary, len(results))
	for i, res := range results {
		a.logger.Info("model evaluated",
			log.ModelNameKey, res.Name,
			log.PhaseKey, log.PhaseTesting,
			log.TestErrorKey, res.TestError,
			log.StdErrorKey, res.StdError,
		)
		summaries[i] = report.Summarize(res.Name, models[res.Name], res)
	}
	a.doc.Shrinkage = summaries
	a.print("Shrinkage methods", report.ShrinkageTable(summaries))

	if path := a.cfg.Output.ChartPNG; path != "" {
		if err := writeFile(path, func(w io.Writer) error { return report.CoefficientChartPNG(w, summaries) }); err != nil {
			return err
		}
	}
	return a.writeHTML()
}

func (a *app) path() error {
	if err := a.load(); err != nil {
		return err
	}
	train, err := a.prepared.Training()
	if err != nil {
		return err
	}
	results, err := subset.Path(train.X, train.Y, 0, a.subsetOptions()...)
	if err != nil {
		return err
	}
	a.doc.Path = report.NewPath(results)
	a.print("Best subset path", report.PathTable(a.doc.Path))
	return a.writeHTML()
}

func (a *app) fitLS(train dataset.Split) (*linear.Fit, error) {
	fit, err := linear.LeastSquares(train.X, train.Y)
	if err != nil {
		return nil, err
	}
	a.logger.Info("least squares fitted",
		log.ModelNameKey, methodLS,
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, fit.Observations,
		log.FeaturesKey, len(fit.Columns),
		log.RSSKey, fit.RSS,
	)
	return fit, nil
}

func (a *app) subsetOptions() []subset.Option {
	opts := []subset.Option{
		subset.WithWorkers(a.cfg.Model.Workers),
		subset.WithLogger(a.logger),
	}
	if a.cfg.Model.Intercept {
		opts = append(opts, subset.WithAlwaysInclude(dataset.InterceptName))
	}
	return opts
}

func (a *app) writeHTML() error {
	path := a.cfg.Output.ChartHTML
	if path == "" {
		return nil
	}
	return writeFile(path, func(w io.Writer) error {
		return report.ComparisonPage(w, a.doc.Shrinkage, a.doc.Path)
	})
}

// print writes a titled table unless the output is JSON.
func (a *app) print(title, table string) {
	if a.cfg.Output.Format != config.FormatTable {
		return
	}
	fmt.Fprintf(a.out, "\n%s\n%s\n", title, table)
}

// finish writes the collected document when the output is JSON.
func (a *app) finish() error {
	a.stopProfile()
	if a.cfg.Output.Format != config.FormatJSON {
		return nil
	}
	return report.WriteJSON(a.out, a.doc)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return write(f)
}
