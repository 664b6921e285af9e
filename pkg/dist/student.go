package dist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type StudentT struct {
	dof  float64
	dist distuv.StudentsT
}

func NewStudentT(dof float64) (StudentT, error) {
	if dof <= 0 || math.IsNaN(dof) {
		return StudentT{}, &InvalidParameterError{Name: "dof", Value: dof, Reason: "must be positive"}
	}
	return StudentT{
		dof:  dof,
		dist: distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof},
	}, nil
}

func (StudentT) Family() Family {
	return FamilyStudentT
}

func (StudentT) Name() string {
	return "student-t"
}

func (d StudentT) Dof() float64 {
	return d.dof
}

func (d StudentT) Quantile(p float64) float64 {
	return d.dist.Quantile(p)
}

func (d StudentT) Density(x float64) float64 {
	return d.dist.Prob(x)
}

func (d StudentT) CDF(x float64) float64 {
	return d.dist.CDF(x)
}

// MeanAbs is the absolute first moment of the unit variance Student-t.
// NaN when dof <= 2, where the standardized form does not exist.
func (d StudentT) MeanAbs() float64 {
	return StudentTMeanAbs(d.dof)
}

// TailExpectation returns E[X | X < q_alpha] using the closed form
// -f(q)*(dof+q^2)/((dof-1)*alpha). Undefined for dof <= 1.
func (d StudentT) TailExpectation(alpha float64) (float64, error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, &InvalidParameterError{Name: "alpha", Value: alpha, Reason: "must be in (0, 1)"}
	}
	if d.dof <= 1 {
		return 0, &InvalidParameterError{Name: "dof", Value: d.dof, Reason: "tail expectation undefined for dof <= 1"}
	}
	q := d.dist.Quantile(alpha)
	return -d.dist.Prob(q) * (d.dof + q*q) / ((d.dof - 1) * alpha), nil
}

func (d StudentT) String() string {
	return fmt.Sprintf("student-t(%.2f)", d.dof)
}

func StudentTMeanAbs(dof float64) float64 {
	if dof <= 2 {
		return math.NaN()
	}
	lg1, _ := math.Lgamma((dof + 1) / 2)
	lg2, _ := math.Lgamma(dof / 2)
	return 2 * math.Sqrt(dof-2) * math.Exp(lg1-lg2) / (math.Sqrt(math.Pi) * (dof - 1))
}

// StudentTLogDensity is the log density of the unit variance Student-t at z.
func StudentTLogDensity(z, dof float64) float64 {
	if dof <= 2 {
		return math.NaN()
	}
	lg1, _ := math.Lgamma((dof + 1) / 2)
	lg2, _ := math.Lgamma(dof / 2)
	return lg1 - lg2 - 0.5*math.Log(math.Pi*(dof-2)) - (dof+1)/2*math.Log(1+z*z/(dof-2))
}
