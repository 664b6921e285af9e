package fixed

var (
	Zero    = FromInt64(0, 0)
	One     = FromInt64(1, 0)
	Two     = FromInt64(2, 0)
	Three   = FromInt64(3, 0)
	Four    = FromInt64(4, 0)
	Five    = FromInt64(5, 0)
	Ten     = FromInt64(10, 0)
	Hundred = FromInt64(100, 0)

	// Sqrt252 annualizes daily volatility, 252 trading days per year.
	Sqrt252 = FromInt64(252, 0).Sqrt()
)
