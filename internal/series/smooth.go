package series

import "github.com/newthinker/prism/internal/core"

// SMA computes a Simple Moving Average overlay for a series. The result
// keeps the source coordinates from index period-1 onward, so it can be
// drawn over the original curve. Returns an empty series when the input
// is shorter than the period.
func SMA(s core.Series, period int) core.Series {
	if period <= 0 || len(s) < period {
		return core.Series{}
	}

	out := make(core.Series, 0, len(s)-period+1)

	var sum float64
	for i := 0; i < period; i++ {
		sum += s[i].Y
	}
	out = append(out, core.Point{X: s[period-1].X, Y: sum / float64(period)})

	for i := period; i < len(s); i++ {
		sum = sum - s[i-period].Y + s[i].Y
		out = append(out, core.Point{X: s[i].X, Y: sum / float64(period)})
	}

	return out
}

// EMA computes an Exponential Moving Average overlay, seeded with the SMA
// of the first period values.
func EMA(s core.Series, period int) core.Series {
	if period <= 0 || len(s) < period {
		return core.Series{}
	}

	out := make(core.Series, 0, len(s)-period+1)
	multiplier := 2.0 / float64(period+1)

	var sum float64
	for i := 0; i < period; i++ {
		sum += s[i].Y
	}
	ema := sum / float64(period)
	out = append(out, core.Point{X: s[period-1].X, Y: ema})

	for i := period; i < len(s); i++ {
		ema = (s[i].Y-ema)*multiplier + ema
		out = append(out, core.Point{X: s[i].X, Y: ema})
	}

	return out
}
