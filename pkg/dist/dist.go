package dist

type Family uint8

const (
	FamilyNormal Family = iota
	FamilyStudentT
)

func (f Family) String() string {
	switch f {
	case FamilyNormal:
		return "normal"
	case FamilyStudentT:
		return "student-t"
	default:
		return "unknown"
	}
}

// Innovation is the innovation distribution of a conditional volatility
// model. Quantile, Density and CDF describe the plain distribution used for
// risk quantiles. MeanAbs is the absolute first moment of the unit variance
// form, which is what the EGARCH recursion consumes.
type Innovation interface {
	Family() Family
	Name() string
	Quantile(p float64) float64
	Density(x float64) float64
	CDF(x float64) float64
	MeanAbs() float64
	TailExpectation(alpha float64) (float64, error)
}
