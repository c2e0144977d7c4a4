package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundWithTwoDecimalPlace arredonda meio para longe do zero, como os totais
// do relatório. NaN e infinito viram 0.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
