package ratio

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/farabin/finratio/internal/domain"
)

// Mean calculates the arithmetic mean of a decimal slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := lo.Reduce(values, func(acc decimal.Decimal, v decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(v)
	}, decimal.Zero)
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// divide applies SafeDiv element-wise.
func divide(num, den []decimal.Decimal) []decimal.Decimal {
	return lo.Map(num, func(v decimal.Decimal, i int) decimal.Decimal {
		return domain.SafeDiv(v, den[i])
	})
}

// divideBy divides every element by a single scalar.
func divideBy(num []decimal.Decimal, den decimal.Decimal) []decimal.Decimal {
	return lo.Map(num, func(v decimal.Decimal, _ int) decimal.Decimal {
		return domain.SafeDiv(v, den)
	})
}

func add(a, b []decimal.Decimal) []decimal.Decimal {
	return lo.Map(a, func(v decimal.Decimal, i int) decimal.Decimal {
		return v.Add(b[i])
	})
}

func sub(a, b []decimal.Decimal) []decimal.Decimal {
	return lo.Map(a, func(v decimal.Decimal, i int) decimal.Decimal {
		return v.Sub(b[i])
	})
}

func mul(a, b []decimal.Decimal) []decimal.Decimal {
	return lo.Map(a, func(v decimal.Decimal, i int) decimal.Decimal {
		return v.Mul(b[i])
	})
}

func scale(a []decimal.Decimal, k decimal.Decimal) []decimal.Decimal {
	return lo.Map(a, func(v decimal.Decimal, _ int) decimal.Decimal {
		return v.Mul(k)
	})
}

// growth returns the change of each value against the previous period,
// relative to the previous value. The first period and unreported periods are zero.
func growth(values []decimal.Decimal, reported func(int) bool) []decimal.Decimal {
	return lo.Map(values, func(v decimal.Decimal, i int) decimal.Decimal {
		if i == 0 || !reported(i) {
			return decimal.Zero
		}
		prev := values[i-1]
		return domain.SafeDiv(v.Sub(prev), prev)
	})
}
