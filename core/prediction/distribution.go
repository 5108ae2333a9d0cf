package prediction

import "math"

// distribute spreads a normal curve centred on the prediction across the letter-grade bands.
// Lower confidence means a wider curve. Each band is integrated on its own and rounded,
// and the bands leave gaps (e.g. 96-97), so the total is usually not exactly 100.
func distribute(predicted, confidence float64) Distribution {
	stdDev := (1 - confidence) * 15

	var d Distribution
	for _, b := range Bands {
		p := normalProbability(predicted, stdDev, b.Min, b.Max)
		d.set(b.Letter, int(math.Round(p*100)))
	}
	return d
}

// normalProbability returns P(min <= X <= max) for X ~ N(mean, stdDev²).
// A non-positive stdDev never comes from Predict (confidence tops out at 0.95); it is
// treated as a point mass for direct callers.
func normalProbability(mean, stdDev, min, max float64) float64 {
	if stdDev <= 0 {
		if mean >= min && mean <= max {
			return 1
		}
		return 0
	}
	z1 := (min - mean) / stdDev
	z2 := (max - mean) / stdDev

	p1 := 0.5 * (1 + erf(z1/math.Sqrt2))
	p2 := 0.5 * (1 + erf(z2/math.Sqrt2))
	return math.Max(0, p2-p1)
}

// erf is the Abramowitz & Stegun 7.1.26 approximation of the error function (|error| <= 1.5e-7).
// The coefficients must not change: distribution percentages depend on them.
func erf(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if x < 0 {
		sign = -1
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - ((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}
