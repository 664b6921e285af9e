package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Normal struct {
	dist distuv.Normal
}

func NewNormal() Normal {
	return Normal{dist: distuv.UnitNormal}
}

func (Normal) Family() Family {
	return FamilyNormal
}

func (Normal) Name() string {
	return "normal"
}

func (d Normal) Quantile(p float64) float64 {
	return d.dist.Quantile(p)
}

func (d Normal) Density(x float64) float64 {
	return d.dist.Prob(x)
}

func (d Normal) CDF(x float64) float64 {
	return d.dist.CDF(x)
}

func (Normal) MeanAbs() float64 {
	return NormalMeanAbs()
}

// TailExpectation returns E[Z | Z < q_alpha] = -phi(q_alpha)/alpha.
func (d Normal) TailExpectation(alpha float64) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, &InvalidParameterError{Name: "alpha", Value: alpha, Reason: "must be in (0, 1)"}
	}
	q := d.dist.Quantile(alpha)
	return -d.dist.Prob(q) / alpha, nil
}

func NormalMeanAbs() float64 {
	return math.Sqrt(2 / math.Pi)
}

func NormalLogDensity(z float64) float64 {
	return -0.5*math.Log(2*math.Pi) - 0.5*z*z
}
