package drawing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders localized annotation text.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale. Unknown locales fall
// back to English.
func NewFormatter(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{p: message.NewPrinter(tag)}
}

// Area formats a square-metre area with one decimal and digit grouping.
func (f Formatter) Area(a float64) string {
	return f.p.Sprintf("%.1f m²", a)
}

// Length formats a length in metres with two decimals.
func (f Formatter) Length(l float64) string {
	return f.p.Sprintf("%.2f m", l)
}

// Count formats an integer with digit grouping.
func (f Formatter) Count(n int) string {
	return f.p.Sprintf("%d", n)
}

// Percent formats a percentage with one decimal.
func (f Formatter) Percent(v float64) string {
	return f.p.Sprintf("%.1f%%", v)
}
