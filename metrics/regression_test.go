package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

func TestErrorMetrics(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		rss       float64
		mse       float64
		mae       float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			tolerance: 1e-10,
		},
		{
			name:      "symmetric residuals",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			rss:       1.0, // 4 * 0.5²
			mse:       0.25,
			mae:       0.5,
			tolerance: 1e-10,
		},
		{
			name:      "larger errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			rss:       17.0, // 2² + 2² + 3²
			mse:       17.0 / 3.0,
			mae:       7.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rss, err := RSS(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RSS() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			mse, err := MSE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("MSE() error = %v", err)
			}
			rmse, err := RMSE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("RMSE() error = %v", err)
			}
			mae, err := MAE(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("MAE() error = %v", err)
			}

			if math.Abs(rss-tt.rss) > tt.tolerance {
				t.Errorf("RSS() = %v, want %v", rss, tt.rss)
			}
			if math.Abs(mse-tt.mse) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", mse, tt.mse)
			}
			if math.Abs(rmse-math.Sqrt(tt.mse)) > tt.tolerance {
				t.Errorf("RMSE() = %v, want %v", rmse, math.Sqrt(tt.mse))
			}
			if math.Abs(mae-tt.mae) > tt.tolerance {
				t.Errorf("MAE() = %v, want %v", mae, tt.mae)
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "mean prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "worse than mean baseline",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{4.0, 3.0, 2.0, 1.0}),
			want:      -3.0, // RSS 20 / TSS 5
			tolerance: 1e-10,
		},
		{
			name:    "no variance in yTrue",
			yTrue:   mat.NewVecDense(3, []float64{3.0, 3.0, 3.0}),
			yPred:   mat.NewVecDense(3, []float64{2.0, 3.0, 4.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeanStdError(t *testing.T) {
	mean, se, err := MeanStdError([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("MeanStdError() error = %v", err)
	}
	if mean != 3 {
		t.Errorf("mean = %v, want 3", mean)
	}
	// sample sd = sqrt(2.5)
	if want := math.Sqrt(2.5) / math.Sqrt(5); math.Abs(se-want) > 1e-12 {
		t.Errorf("std error = %v, want %v", se, want)
	}

	var warned error
	restore := errors.SetWarningHandler(func(w error) { warned = w })
	defer restore()

	mean, se, err = MeanStdError([]float64{4})
	if err != nil {
		t.Fatalf("MeanStdError() error = %v", err)
	}
	if mean != 4 || !math.IsNaN(se) {
		t.Errorf("single value: mean = %v, std error = %v", mean, se)
	}
	var w *errors.UndefinedMetricWarning
	if !errors.As(warned, &w) {
		t.Errorf("expected UndefinedMetricWarning, got %v", warned)
	}

	if _, _, err := MeanStdError(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)

	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
