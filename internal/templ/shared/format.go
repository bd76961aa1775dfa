package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var gbp = message.NewPrinter(language.BritishEnglish)

// FormatPounds formats a whole-pound amount, e.g. 1190 -> "£1,190".
func FormatPounds(amount int) string {
	return gbp.Sprintf("£%d", amount)
}
