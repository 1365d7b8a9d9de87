package extraction

import (
	"sort"
	"strings"
)

// keyRule routes a label phrase found in a response line to a record
// field. The phrase is matched as a lowercase substring of the line.
type keyRule struct {
	phrase string
	field  func(*CandidateRecord) *string
}

// keyRules lists every label the extraction prompt asks for, plus a
// few short synonyms the model uses in practice. Order here does not
// matter: the table is sorted longest phrase first at init so that
// specific labels like "departure code" always win over substrings
// like "code" ever could ("departure", "time" and "code" are
// deliberately not rules of their own because they are ambiguous).
var keyRules = []keyRule{
	{"flight number", func(c *CandidateRecord) *string { return &c.FlightNumber }},
	{"flight", func(c *CandidateRecord) *string { return &c.FlightNumber }},
	{"airline", func(c *CandidateRecord) *string { return &c.Airline }},
	{"passenger name", func(c *CandidateRecord) *string { return &c.PassengerName }},
	{"passenger", func(c *CandidateRecord) *string { return &c.PassengerName }},
	{"name", func(c *CandidateRecord) *string { return &c.PassengerName }},
	{"departure airport", func(c *CandidateRecord) *string { return &c.DepartureAirport }},
	{"departure city", func(c *CandidateRecord) *string { return &c.DepartureCity }},
	{"departure code", func(c *CandidateRecord) *string { return &c.DepartureCode }},
	{"departure date", func(c *CandidateRecord) *string { return &c.DepartureDate }},
	{"date", func(c *CandidateRecord) *string { return &c.DepartureDate }},
	{"departure time", func(c *CandidateRecord) *string { return &c.DepartureTime }},
	{"arrival airport", func(c *CandidateRecord) *string { return &c.ArrivalAirport }},
	{"arrival city", func(c *CandidateRecord) *string { return &c.ArrivalCity }},
	{"arrival code", func(c *CandidateRecord) *string { return &c.ArrivalCode }},
	{"arrival time", func(c *CandidateRecord) *string { return &c.ArrivalTime }},
	{"seat", func(c *CandidateRecord) *string { return &c.Seat }},
	{"gate", func(c *CandidateRecord) *string { return &c.Gate }},
	{"terminal", func(c *CandidateRecord) *string { return &c.Terminal }},
	{"confirmation code", func(c *CandidateRecord) *string { return &c.ConfirmationCode }},
	{"confirmation", func(c *CandidateRecord) *string { return &c.ConfirmationCode }},
	{"booking reference", func(c *CandidateRecord) *string { return &c.ConfirmationCode }},
	{"pnr", func(c *CandidateRecord) *string { return &c.ConfirmationCode }},
	{"boarding time", func(c *CandidateRecord) *string { return &c.BoardingTime }},
	{"boarding", func(c *CandidateRecord) *string { return &c.BoardingTime }},
}

func init() {
	sort.SliceStable(keyRules, func(i, j int) bool {
		return len(keyRules[i].phrase) > len(keyRules[j].phrase)
	})
}

// ParseResponse turns freeform "Label: value" text from the model into
// a CandidateRecord. Lines without a colon are skipped. The value is
// everything after the first colon of the original-case line, run
// through SanitizeField. The first line to fill a field wins; later
// lines matching the same label are ignored. ParseResponse never
// fails: unrecognizable input yields an empty record.
func ParseResponse(text string) CandidateRecord {
	var rec CandidateRecord
	for _, line := range strings.Split(text, "\n") {
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		lowered := strings.ToLower(line)
		for _, rule := range keyRules {
			if !strings.Contains(lowered, rule.phrase) {
				continue
			}
			if dst := rule.field(&rec); *dst == "" {
				if v := SanitizeField(line[colon+1:]); v != "" {
					*dst = v
				}
			}
			break
		}
	}
	return rec
}
