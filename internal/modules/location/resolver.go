// README: Resolves free-text locations against the gazetteer.
package location

import "strings"

type Resolver struct {
	cities []City
	names  []string // lowercased, parallel to cities
}

func NewResolver(cities []City) *Resolver {
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = strings.ToLower(c.Name)
	}
	return &Resolver{cities: cities, names: names}
}

// Resolve returns the first city matching text by exact name, then substring
// containment in either direction, then any comma/space separated token.
func (r *Resolver) Resolve(text string) (City, bool) {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return City{}, false
	}

	for i, name := range r.names {
		if name == q {
			return r.cities[i], true
		}
	}

	for i, name := range r.names {
		if strings.Contains(q, name) || strings.Contains(name, q) {
			return r.cities[i], true
		}
	}

	tokens := strings.FieldsFunc(q, func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n'
	})
	for i, name := range r.names {
		for _, tok := range tokens {
			if strings.Contains(name, tok) {
				return r.cities[i], true
			}
		}
	}
	return City{}, false
}
