package countryquiz

import (
	"math"
	"strconv"
)

type magnitude struct {
	limit    float64
	divisor  float64
	suffix   string
	decimals int
}

// magnitudes builds the K/M/B/T ladder. Values below 1,000 render as integers.
// billions carries the precision for the B and T tiers: the largest
// populations only differ in the third significant digit there.
func magnitudes(billions int) []magnitude {
	return []magnitude{
		{limit: 1e3, divisor: 1, decimals: 0},
		{limit: 1e6, divisor: 1e3, suffix: "K", decimals: 2},
		{limit: 1e9, divisor: 1e6, suffix: "M", decimals: 2},
		{limit: 1e12, divisor: 1e9, suffix: "B", decimals: billions},
		{limit: math.Inf(1), divisor: 1e12, suffix: "T", decimals: billions},
	}
}

var (
	countLadder    = magnitudes(3)
	currencyLadder = magnitudes(2)
)

func scaled(v float64, ladder []magnitude) string {
	last := len(ladder) - 1
	for i, m := range ladder {
		if v >= m.limit && i < last {
			continue
		}
		s := strconv.FormatFloat(v/m.divisor, 'f', m.decimals, 64)
		// 999,999 rounds to "1000.00K"; promote it to "1.00M" instead.
		if i < last {
			if r, err := strconv.ParseFloat(s, 64); err == nil && r*m.divisor >= m.limit {
				continue
			}
		}
		return s + m.suffix
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatPopulation(v float64) string { return scaled(v, countLadder) }

func formatArea(v float64) string { return scaled(v, countLadder) + " km²" }

func formatCurrency(v float64) string { return "$" + scaled(v, currencyLadder) }

func formatDensity(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "/km²" }

func formatPercent(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" }

func formatHDI(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

func formatYears(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + " years" }
