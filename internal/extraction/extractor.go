package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// extractionPrompt instructs the model to answer with plain Label:
// value lines only. The parser depends on the exact labels and on the
// literal "null" marker, so this text and the key table in parse.go
// move together.
const extractionPrompt = `You are reading the recognized text of a flight boarding pass. Extract the following fields from the text and answer with exactly one field per line in the form "Label: value".

Flight Number:
Airline:
Passenger Name:
Departure Airport:
Departure City:
Departure Code:
Arrival Airport:
Arrival City:
Arrival Code:
Departure Date:
Departure Time:
Arrival Time:
Seat:
Gate:
Terminal:
Confirmation Code:
Boarding Time:

Important:
- Use the literal word "null" for any field you cannot find
- Departure Code and Arrival Code are the three-letter IATA airport codes (e.g. HYD, JFK)
- Answer in plain text only. Do not use markdown or formatting characters such as ** or _
- Do not add any text before or after the field lines

Boarding pass text:
`

// ModelSession is the generative-model collaborator. Available is the
// capability gate: when it reports false no Respond call is attempted.
type ModelSession interface {
	Available() bool
	Respond(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrModelUnavailable means the model capability is not present on
	// this host. It is an expected condition, not a failure.
	ErrModelUnavailable = errors.New("model capability unavailable")

	// ErrNoFields means the model answered but nothing recognizable
	// could be parsed out of the response.
	ErrNoFields = errors.New("no fields recognized in model response")
)

// Extractor runs the structured-extraction stage: it builds the fixed
// prompt from recognized text, invokes the model session once, and
// parses the response.
type Extractor struct {
	session ModelSession
}

func NewExtractor(session ModelSession) *Extractor {
	return &Extractor{session: session}
}

// Extract joins the recognized lines into the prompt and returns the
// parsed candidate record. It returns ErrModelUnavailable without
// invoking the session when the capability is absent, and ErrNoFields
// when the response parsed to an all-absent record.
func (e *Extractor) Extract(ctx context.Context, lines []string) (CandidateRecord, error) {
	if e.session == nil || !e.session.Available() {
		return CandidateRecord{}, ErrModelUnavailable
	}

	prompt := extractionPrompt + strings.Join(lines, "\n")
	response, err := e.session.Respond(ctx, prompt)
	if err != nil {
		return CandidateRecord{}, fmt.Errorf("invoking model: %w", err)
	}

	rec := ParseResponse(response)
	if rec.Empty() {
		return CandidateRecord{}, ErrNoFields
	}
	return rec, nil
}
