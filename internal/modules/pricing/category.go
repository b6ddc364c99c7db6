// README: Vehicle categories and the alias table used to parse them from free-form input.
package pricing

import "strings"

type Category string

const (
	Sedan        Category = "Sedan"
	PremiumSedan Category = "Premium Sedan"
	SUV          Category = "SUV"
	PremiumSUV   Category = "Premium SUV"
)

// All returns the categories in display order.
func All() []Category {
	return []Category{Sedan, PremiumSedan, SUV, PremiumSUV}
}

// aliases is keyed by the normalized form (lowercase, separators removed).
var aliases = map[string]Category{
	"sedan":        Sedan,
	"premiumsedan": PremiumSedan,
	"suv":          SUV,
	"premiumsuv":   PremiumSUV,

	"economy": Sedan,
	"premium": PremiumSedan,
	"xl":      SUV,
	"luxury":  PremiumSUV,
}

// ParseCategory is the only place category names from clients or the
// pricing backend are interpreted.
func ParseCategory(s string) (Category, bool) {
	c, ok := aliases[normalizeCategory(s)]
	return c, ok
}

func normalizeCategory(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
