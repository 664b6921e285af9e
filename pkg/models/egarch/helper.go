package egarch

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/peter-kozarec/aphelion/pkg/dist"
)

func paramCount(family dist.Family) int {
	if family == dist.FamilyStudentT {
		return 6
	}
	return 5
}

// initialGuess builds the deterministic starting point. Raw optimizer
// coordinates are (mu, omega, alpha, gamma, atanh(beta)), plus log(dof-2)
// for the Student-t family. Omega starts at (1-beta)*log(v) so the
// stationary log variance matches the sample variance.
func initialGuess(values []float64, family dist.Family) []float64 {
	mean := stat.Mean(values, nil)
	v := 0.0
	for _, val := range values {
		d := val - mean
		v += d * d
	}
	v /= float64(len(values))
	if v < minVariance {
		v = minVariance
	}

	x0 := []float64{mean, 0.1 * math.Log(v), 0.1, -0.05, math.Atanh(0.9)}
	if family == dist.FamilyStudentT {
		x0 = append(x0, math.Log(6.0))
	}
	return x0
}

// decode maps raw optimizer coordinates back to model parameters. Beta is
// tanh transformed to keep the recursion stationary and dof is 2+exp(x)
// so the Student-t variance stays finite. Returns NaN dof for the normal
// family.
func decode(x []float64, family dist.Family) (Params, float64) {
	p := Params{
		Mu:    x[0],
		Omega: x[1],
		Alpha: x[2],
		Gamma: x[3],
		Beta:  math.Tanh(x[4]),
	}
	dof := math.NaN()
	if family == dist.FamilyStudentT {
		dof = 2 + math.Exp(x[5])
	}
	return p, dof
}

func negLogLikelihood(values, x []float64, family dist.Family) float64 {
	params, dof := decode(x, family)

	var meanAbs float64
	if family == dist.FamilyStudentT {
		meanAbs = dist.StudentTMeanAbs(dof)
	} else {
		meanAbs = dist.NormalMeanAbs()
	}

	sigma := volatilityPath(values, params, meanAbs)
	ll := 0.0
	for t, s := range sigma {
		z := (values[t] - params.Mu) / s
		if family == dist.FamilyStudentT {
			ll += dist.StudentTLogDensity(z, dof) - math.Log(s)
		} else {
			ll += dist.NormalLogDensity(z) - math.Log(s)
		}
	}
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		return math.Inf(1)
	}
	return -ll
}
