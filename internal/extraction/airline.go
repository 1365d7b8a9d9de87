package extraction

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// airlineDenylist holds tokens that mark an extracted airline name as
// a placeholder rather than a real carrier. "xsat" is a junk literal
// the model has been seen emitting for unreadable passes.
var airlineDenylist = []string{
	"null",
	"nil",
	"unknown",
	"n/a",
	"tba",
	"airline",
	"flight",
	"code",
	"xsat",
}

// IsValidAirline reports whether name looks like a real carrier name.
// Empty names, names containing a denylisted token (case-insensitive),
// names shorter than three characters and names without a single
// letter are all rejected.
func IsValidAirline(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	lowered := strings.ToLower(trimmed)
	for _, tok := range airlineDenylist {
		if strings.Contains(lowered, tok) {
			return false
		}
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// AirlineDirectory looks up the canonical carrier name for a flight
// number. An empty name with a nil error means the directory has no
// answer.
type AirlineDirectory interface {
	Lookup(ctx context.Context, flightNumber string) (string, error)
}

// Resolver fills in a missing or junk airline name from a directory.
type Resolver struct {
	directory AirlineDirectory
}

// NewResolver creates a Resolver backed by the given directory, which
// may be nil to disable lookups entirely.
func NewResolver(directory AirlineDirectory) *Resolver {
	return &Resolver{directory: directory}
}

// Resolve returns the extracted airline untouched when it already
// looks valid; the directory is not consulted in that case. Otherwise
// it looks the carrier up by flight number and returns the answer. On
// lookup failure, an empty answer, or a missing flight number the
// original value is returned unchanged. Resolve never errors and is
// idempotent: resolving its own output again changes nothing.
func (r *Resolver) Resolve(ctx context.Context, airline, flightNumber string) string {
	if IsValidAirline(airline) {
		return airline
	}
	if flightNumber == "" || r.directory == nil {
		return airline
	}
	name, err := r.directory.Lookup(ctx, flightNumber)
	if err != nil || name == "" {
		return airline
	}
	return name
}
