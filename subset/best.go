// Package subset implements exhaustive best-subset selection: every
// k-column subset of a design matrix is fitted by least squares and the one
// with the smallest training RSS is kept.
package subset

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/YuminosukeSato/eslgo/core/parallel"
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/linear"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/pkg/log"
)

// Result is the winning subset of a search.
type Result struct {
	// Combination holds the ascending column indices of the subset in the
	// searched matrix, forced columns included.
	Combination []int `json:"combination"`
	// Names are the column names at Combination.
	Names []string `json:"names"`
	// Fit is the least-squares fit on the restricted matrix.
	Fit *linear.Fit `json:"fit"`
	// RSS is the training residual sum of squares of Fit.
	RSS float64 `json:"rss"`
	// Size is the number of free columns chosen (k).
	Size int `json:"size"`
	// Evaluated is the number of subsets fitted, C(free columns, k).
	Evaluated int `json:"evaluated"`
}

// candidate is the best fit found in one chunk of the enumeration.
type candidate struct {
	fit     *linear.Fit
	columns []int
	found   bool
}

// search holds what every fit in one BestSubset call shares.
type search struct {
	X      *dataset.DesignMatrix
	y      *dataset.Response
	forced []int // columns in every subset
	free   []int // columns to choose k from
	k      int
}

// BestSubset fits every subset of k columns of X and returns the one with
// minimum training RSS. Candidates are enumerated in lexicographic order of
// column index and a later candidate replaces the current best only when
// its RSS is strictly smaller, so ties go to the lexicographically first
// subset regardless of the number of workers.
//
// k must satisfy 1 <= k <= p, where p excludes columns named by
// WithAlwaysInclude. A fit error (for example a singular subset) aborts the
// search; the error of the lexicographically first failing subset is
// returned.
func BestSubset(X *dataset.DesignMatrix, y *dataset.Response, k int, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	if err := o.validate("subset.BestSubset"); err != nil {
		return nil, err
	}
	s, err := newSearch("subset.BestSubset", X, y, k, o.alwaysInclude)
	if err != nil {
		return nil, err
	}
	return s.run(o)
}

func newSearch(op string, X *dataset.DesignMatrix, y *dataset.Response, k int, alwaysInclude []string) (*search, error) {
	if err := dataset.CheckAligned(op, X, y); err != nil {
		return nil, err
	}
	forced, err := X.Indices(alwaysInclude)
	if err != nil {
		return nil, err
	}
	_, p := X.Dims()
	free := make([]int, 0, p)
	for j := 0; j < p; j++ {
		if !slices.Contains(forced, j) {
			free = append(free, j)
		}
	}
	if k < 1 || k > len(free) {
		return nil, errors.NewInvalidParameterError(op, "k", k,
			"subset size must satisfy 1 <= k <= number of candidate columns")
	}
	slices.Sort(forced)
	forced = slices.Compact(forced)
	return &search{X: X, y: y, forced: forced, free: free, k: k}, nil
}

func (s *search) run(o *options) (*Result, error) {
	total := combin.Binomial(len(s.free), s.k)
	logger := o.logger.With(
		log.ComponentKey, "subset",
		log.OperationKey, log.OperationSearch,
		log.SubsetSizeKey, s.k,
	)
	logger.Debug("best subset search started",
		log.FeaturesKey, len(s.free),
		log.EvaluatedKey, total,
		log.WorkersKey, o.workers,
	)
	start := time.Now()

	var best candidate
	if o.workers == 1 {
		var err error
		if best, err = s.scanAll(); err != nil {
			logger.Debug("best subset search failed", log.ErrAttrKey, err)
			return nil, err
		}
	} else {
		// Each chunk writes only its own slot; slots are reduced in chunk
		// order after every worker has returned.
		chunks := parallel.Chunks(total, o.workers)
		winners := make([]candidate, len(chunks))
		err := parallel.ParallelizeWithThreshold(total, o.threshold, o.workers, func(chunk, from, to int) error {
			c, err := s.scanRange(from, to)
			winners[chunk] = c
			return err
		})
		if err != nil {
			logger.Debug("best subset search failed", log.ErrAttrKey, err)
			return nil, err
		}
		for _, c := range winners {
			best = better(best, c)
		}
	}

	fit := best.fit
	fit.Combination = slices.Clone(best.columns)
	names := make([]string, len(best.columns))
	for i, j := range best.columns {
		names[i] = s.X.Name(j)
	}

	logger.Debug("best subset search finished",
		log.CombinationKey, best.columns,
		log.ColumnsKey, names,
		log.RSSKey, fit.RSS,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return &Result{
		Combination: slices.Clone(best.columns),
		Names:       names,
		Fit:         fit,
		RSS:         fit.RSS,
		Size:        s.k,
		Evaluated:   total,
	}, nil
}

// scanAll walks the lazy combination sequence on the calling goroutine.
func (s *search) scanAll() (candidate, error) {
	var best candidate
	for comb := range Combinations(len(s.free), s.k) {
		c, err := s.fit(comb)
		if err != nil {
			return candidate{}, err
		}
		best = better(best, c)
	}
	return best, nil
}

// scanRange fits combinations [from, to) of the lexicographic order.
func (s *search) scanRange(from, to int) (candidate, error) {
	var best candidate
	comb := make([]int, s.k)
	for idx := from; idx < to; idx++ {
		combin.IndexToCombination(comb, idx, len(s.free), s.k)
		c, err := s.fit(comb)
		if err != nil {
			return candidate{}, err
		}
		best = better(best, c)
	}
	return best, nil
}

// fit fits the forced columns plus the free columns picked by comb.
func (s *search) fit(comb []int) (candidate, error) {
	columns := make([]int, 0, len(s.forced)+len(comb))
	columns = append(columns, s.forced...)
	for _, i := range comb {
		columns = append(columns, s.free[i])
	}
	slices.Sort(columns)

	Xs, err := s.X.Select(columns)
	if err != nil {
		return candidate{}, err
	}
	fit, err := linear.LeastSquares(Xs, s.y)
	if err != nil {
		return candidate{}, err
	}
	return candidate{fit: fit, columns: columns, found: true}, nil
}

// better returns next if it strictly improves on cur.
func better(cur, next candidate) candidate {
	if !next.found {
		return cur
	}
	if !cur.found || next.fit.RSS < cur.fit.RSS {
		return next
	}
	return cur
}
