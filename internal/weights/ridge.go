package weights

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// featureScaler standardizes feature columns to zero mean and unit variance.
// Zero-variance columns pass through unscaled.
type featureScaler struct {
	means []float64
	stds  []float64
}

func (fs *featureScaler) fit(rows [][]float64) {
	n := len(rows)
	d := len(rows[0])
	fs.means = make([]float64, d)
	fs.stds = make([]float64, d)

	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += rows[i][j]
		}
		fs.means[j] = sum / float64(n)

		ss := 0.0
		for i := 0; i < n; i++ {
			diff := rows[i][j] - fs.means[j]
			ss += diff * diff
		}
		fs.stds[j] = math.Sqrt(ss / float64(n))
		if fs.stds[j] == 0 {
			fs.stds[j] = 1.0
		}
	}
}

func (fs *featureScaler) transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - fs.means[j]) / fs.stds[j]
	}
	return out
}

// ridgeModel is a closed-form L2-regularized linear regressor: it solves
// (XᵀX + λI)β = Xᵀy over standardized features with a centered target.
// Chosen as the fixed lightweight regressor for the ML ensemble; training is
// a single dense solve, so it never stalls a weight computation.
type ridgeModel struct {
	lambda    float64
	scaler    featureScaler
	coef      []float64
	intercept float64
}

func newRidgeModel(lambda float64) *ridgeModel {
	return &ridgeModel{lambda: lambda}
}

func (rm *ridgeModel) fit(rows [][]float64, targets []float64) error {
	n := len(rows)
	if n == 0 || n != len(targets) {
		return fmt.Errorf("ridge fit: %d feature rows vs %d targets", n, len(targets))
	}
	d := len(rows[0])

	rm.scaler.fit(rows)

	x := mat.NewDense(n, d, nil)
	for i, row := range rows {
		x.SetRow(i, rm.scaler.transform(row))
	}

	yMean := 0.0
	for _, t := range targets {
		yMean += t
	}
	yMean /= float64(n)
	y := mat.NewVecDense(n, nil)
	for i, t := range targets {
		y.SetVec(i, t-yMean)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+rm.lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return fmt.Errorf("ridge fit: solve failed: %w", err)
	}

	rm.coef = make([]float64, d)
	for j := 0; j < d; j++ {
		rm.coef[j] = beta.AtVec(j)
	}
	rm.intercept = yMean
	return nil
}

func (rm *ridgeModel) predict(row []float64) float64 {
	scaled := rm.scaler.transform(row)
	pred := rm.intercept
	for j, c := range rm.coef {
		pred += c * scaled[j]
	}
	return pred
}
