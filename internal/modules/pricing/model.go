// README: Rate table model, defaults, back-fill, and the pricing backend wire format.
package pricing

import "errors"

var (
	ErrRemoteUpdate    = errors.New("pricing backend update failed")
	ErrInvalidTripType = errors.New("invalid trip type")
)

type TripType string

const (
	OneWay    TripType = "oneWay"
	RoundTrip TripType = "roundTrip"
)

// ParseTripType accepts the camelCase wire names and their dashed forms. Empty means one way.
func ParseTripType(s string) (TripType, error) {
	switch normalizeCategory(s) {
	case "", "oneway":
		return OneWay, nil
	case "roundtrip":
		return RoundTrip, nil
	}
	return "", ErrInvalidTripType
}

// Rates are per-km prices in INR.
type Rates struct {
	OneWay    float64 `json:"oneWay"`
	RoundTrip float64 `json:"roundTrip"`
}

func (r Rates) For(t TripType) float64 {
	if t == RoundTrip {
		return r.RoundTrip
	}
	return r.OneWay
}

type RateTable map[Category]Rates

func DefaultRateTable() RateTable {
	return RateTable{
		Sedan:        {OneWay: 14, RoundTrip: 13},
		PremiumSedan: {OneWay: 16, RoundTrip: 15},
		SUV:          {OneWay: 19, RoundTrip: 18},
		PremiumSUV:   {OneWay: 23, RoundTrip: 22},
	}
}

// BackFill returns a copy in which every known category is present and no
// rate is negative; gaps are taken from DefaultRateTable.
func BackFill(t RateTable) RateTable {
	defaults := DefaultRateTable()
	out := make(RateTable, len(defaults))
	for _, c := range All() {
		d := defaults[c]
		r, ok := t[c]
		if !ok {
			out[c] = d
			continue
		}
		if r.OneWay < 0 {
			r.OneWay = d.OneWay
		}
		if r.RoundTrip < 0 {
			r.RoundTrip = d.RoundTrip
		}
		out[c] = r
	}
	return out
}

// Record is one row of the pricing backend format. FixedPrice is the round-trip per-km rate.
type Record struct {
	Type       string  `json:"type"`
	Rate       float64 `json:"rate"`
	FixedPrice float64 `json:"fixedPrice"`
}

// FromRecords drops rows whose type is not a known category. Later rows win.
func FromRecords(records []Record) RateTable {
	t := make(RateTable, len(records))
	for _, r := range records {
		c, ok := ParseCategory(r.Type)
		if !ok {
			continue
		}
		t[c] = Rates{OneWay: r.Rate, RoundTrip: r.FixedPrice}
	}
	return t
}

// Records lists the table in display order, skipping categories it lacks.
func (t RateTable) Records() []Record {
	out := make([]Record, 0, len(t))
	for _, c := range All() {
		r, ok := t[c]
		if !ok {
			continue
		}
		out = append(out, Record{Type: string(c), Rate: r.OneWay, FixedPrice: r.RoundTrip})
	}
	return out
}

// Entry is this service's own JSON shape for one category.
type Entry struct {
	Category Category `json:"category"`
	Rates
}

func (t RateTable) Entries() []Entry {
	out := make([]Entry, 0, len(t))
	for _, c := range All() {
		if r, ok := t[c]; ok {
			out = append(out, Entry{Category: c, Rates: r})
		}
	}
	return out
}
