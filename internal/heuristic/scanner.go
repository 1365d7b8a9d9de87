// Package heuristic implements the fallback boarding-pass scanner: a
// recognizer plus fixed patterns for the fields that have a
// distinctive printed shape. It is substituted for the model path when
// that yields nothing, and produces the same record shape.
package heuristic

import (
	"context"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/zombor/trip-tracker/internal/extraction"
)

var (
	reFlight   = regexp.MustCompile(`\b([A-Z][A-Z0-9]|[0-9][A-Z])\s?([0-9]{2,4})\b`)
	reRoute    = regexp.MustCompile(`\b([A-Z]{3})\s*(?:->|-+|–|→|>|TO)\s*([A-Z]{3})\b`)
	reSeat     = regexp.MustCompile(`\bSEAT\s*(?:NO\.?)?\s*:?\s*([0-9]{1,3}[A-HJ-K])\b`)
	reGate     = regexp.MustCompile(`\bGATE\s*:?\s*([A-Z]?[0-9]{1,3}[A-Z]?)\b`)
	reTerminal = regexp.MustCompile(`\bTERMINAL\s*:?\s*([A-Z0-9]{1,2})\b`)
	rePNR      = regexp.MustCompile(`\b(?:PNR|CONFIRMATION|BOOKING\s*REF(?:ERENCE)?)\s*(?:NO\.?|NUMBER|CODE)?\s*:?\s*([A-Z0-9]{5,7})\b`)
	reBoarding = regexp.MustCompile(`\bBOARDING\s*(?:TIME)?\s*:?\s*([0-2]?[0-9]:[0-5][0-9])`)
	reDateName = regexp.MustCompile(`\b([0-9]{1,2}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+[0-9]{4})\b`)
	reDateISO  = regexp.MustCompile(`\b([0-9]{4}-[0-9]{2}-[0-9]{2})\b`)
)

// Scanner extracts what it can from the printed text of a pass. It
// needs no generative model and fills only the fields its patterns
// cover; everything else stays absent.
type Scanner struct {
	recognizer extraction.TextRecognizer
	directory  extraction.AirlineDirectory
}

// NewScanner creates a Scanner. The directory is optional and is only
// used to name the carrier for a matched flight number.
func NewScanner(recognizer extraction.TextRecognizer, directory extraction.AirlineDirectory) *Scanner {
	return &Scanner{recognizer: recognizer, directory: directory}
}

// Scan recognizes the text on the bitmap and applies the patterns.
// A nil itinerary with a nil error means nothing usable was found.
func (s *Scanner) Scan(ctx context.Context, img image.Image) (*extraction.Itinerary, error) {
	regions, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("recognizing text: %w", err)
	}

	lines := make([]string, 0, len(regions))
	for _, candidates := range regions {
		if len(candidates) > 0 && candidates[0].Text != "" {
			lines = append(lines, candidates[0].Text)
		}
	}
	text := strings.ToUpper(strings.Join(lines, "\n"))
	if text == "" {
		return nil, nil
	}

	itinerary := &extraction.Itinerary{}

	if m := reFlight.FindStringSubmatch(text); m != nil {
		itinerary.FlightNumber = m[1] + m[2]
	}
	if m := reRoute.FindStringSubmatch(text); m != nil {
		itinerary.DepartureCode = m[1]
		itinerary.ArrivalCode = m[2]
	}
	if m := reSeat.FindStringSubmatch(text); m != nil {
		itinerary.Seat = m[1]
	}
	if m := reGate.FindStringSubmatch(text); m != nil {
		itinerary.Gate = m[1]
	}
	if m := reTerminal.FindStringSubmatch(text); m != nil {
		itinerary.Terminal = m[1]
	}
	if m := rePNR.FindStringSubmatch(text); m != nil {
		itinerary.ConfirmationCode = m[1]
	}
	if m := reBoarding.FindStringSubmatch(text); m != nil {
		itinerary.BoardingTime = m[1]
	}
	if m := reDateName.FindStringSubmatch(text); m != nil {
		itinerary.DepartureDateText = m[1]
	} else if m := reDateISO.FindStringSubmatch(text); m != nil {
		itinerary.DepartureDateText = m[1]
	}
	itinerary.DepartureDate = extraction.ParseFlightDate(itinerary.DepartureDateText)

	if itinerary.FlightNumber != "" && s.directory != nil {
		if name, err := s.directory.Lookup(ctx, itinerary.FlightNumber); err == nil {
			itinerary.Airline = name
		}
	}

	if *itinerary == (extraction.Itinerary{}) {
		return nil, nil
	}
	return itinerary, nil
}
