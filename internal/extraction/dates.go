package extraction

import "time"

// flightDateLayouts are tried in order. These are the only formats the
// prompt and the common boarding-pass layouts produce; anything else
// is left unparsed rather than guessed at.
var flightDateLayouts = []string{
	"2 Jan 2006",
	"2006-01-02",
	"01/02/2006",
}

// ParseFlightDate parses a departure date string against the known
// layouts and returns the first successful parse. The zero time is
// returned when the string is empty or matches none of them.
func ParseFlightDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range flightDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
