// Package types - Deterministic monetary rounding
package types

import "github.com/shopspring/decimal"

// RoundMoney rounds a monetary amount to 2 decimal places.
// Decimal arithmetic keeps rounding stable across platforms;
// naive float rounding drifts on sums of many line items.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round4 rounds a factor or rate to 4 decimal places.
func Round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}

// Round2 rounds a coefficient to 2 decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// SumMoney adds monetary amounts with decimal accumulation and
// returns the total rounded to 2 decimal places.
func SumMoney(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}
