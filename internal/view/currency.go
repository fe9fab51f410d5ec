package view

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var gbpPrinter = message.NewPrinter(language.BritishEnglish)

// GBP formats a monetary value as a pound-prefixed, thousands-grouped,
// two-decimal string, e.g. 1234.5 -> "£1,234.50". Pounds and pence are
// split off the decimal directly; a DECIMAL(20,2) total stays exact where
// a float64 round trip would not.
func GBP(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v = v.Abs()
	}
	pounds := v.IntPart()
	pence := v.Sub(decimal.NewFromInt(pounds)).Mul(decimal.NewFromInt(100)).IntPart()
	return gbpPrinter.Sprintf("£%s%v.%s", sign, number.Decimal(pounds), fmt.Sprintf("%02d", pence))
}
