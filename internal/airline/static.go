// Package airline resolves carrier names from flight numbers. The
// extraction pipeline only consults it when the extracted airline name
// is missing or junk.
package airline

import (
	"context"
	"strings"
)

// designators maps IATA airline designators to carrier names. This is
// not exhaustive; it covers the carriers commonly seen on uploaded
// passes, and unknown designators simply resolve to nothing.
var designators = map[string]string{
	"6E": "IndiGo",
	"AI": "Air India",
	"IX": "Air India Express",
	"QP": "Akasa Air",
	"SG": "SpiceJet",
	"UK": "Vistara",
	"AA": "American Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"BA": "British Airways",
	"FR": "Ryanair",
	"IB": "Iberia",
	"KL": "KLM Royal Dutch Airlines",
	"LH": "Lufthansa",
	"LX": "Swiss International Air Lines",
	"U2": "easyJet",
	"VS": "Virgin Atlantic",
	"CX": "Cathay Pacific",
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"JL": "Japan Airlines",
	"NH": "All Nippon Airways",
	"QF": "Qantas",
	"QR": "Qatar Airways",
	"SQ": "Singapore Airlines",
	"TK": "Turkish Airlines",
}

// Designator extracts the two-character airline designator from a
// flight number like "6E6252" or "AA 100". Returns "" when the flight
// number is too short to carry one.
func Designator(flightNumber string) string {
	s := strings.ToUpper(strings.TrimSpace(flightNumber))
	s = strings.ReplaceAll(s, " ", "")
	if len(s) < 3 {
		// designator plus at least one digit
		return ""
	}
	return s[:2]
}

// Static looks carriers up in the embedded designator table. It never
// fails and needs no network.
type Static struct{}

// Lookup returns the carrier name for the flight number's designator,
// or "" when the designator is unknown.
func (Static) Lookup(_ context.Context, flightNumber string) (string, error) {
	return designators[Designator(flightNumber)], nil
}
