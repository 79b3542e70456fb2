package subset

import (
	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/pkg/log"
)

// Path runs BestSubset for every size 1..kmax and returns the winners in
// order of size. Their RSS values are non-increasing in k.
//
// kmax = 0 means every size up to the number of candidate columns.
func Path(X *dataset.DesignMatrix, y *dataset.Response, kmax int, opts ...Option) ([]*Result, error) {
	o := newOptions(opts)
	if err := o.validate("subset.Path"); err != nil {
		return nil, err
	}
	// k=1 is always valid when a candidate column exists
	first, err := newSearch("subset.Path", X, y, 1, o.alwaysInclude)
	if err != nil {
		return nil, err
	}
	if kmax == 0 {
		kmax = len(first.free)
	}
	if kmax < 1 || kmax > len(first.free) {
		return nil, errors.NewInvalidParameterError("subset.Path", "kmax", kmax,
			"must satisfy 1 <= kmax <= number of candidate columns")
	}

	path := make([]*Result, 0, kmax)
	for k := 1; k <= kmax; k++ {
		s := *first
		s.k = k
		res, err := s.run(o)
		if err != nil {
			return nil, err
		}
		path = append(path, res)
	}
	o.logger.Debug("best subset path finished",
		log.ComponentKey, "subset",
		log.SubsetSizeKey, kmax,
	)
	return path, nil
}
