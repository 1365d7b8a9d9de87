package extraction

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"strings"
	"sync"
)

// RecognizedCandidate is one candidate transcription for a detected
// text region, together with the recognizer's confidence in it.
type RecognizedCandidate struct {
	Text       string
	Confidence float64
}

// TextRecognizer is the optical-text collaborator. Recognize returns
// the candidate transcriptions for every detected region. An empty
// result is a valid outcome, not an error.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) ([][]RecognizedCandidate, error)
}

// FallbackScanner is the heuristic boarding-pass scanner substituted
// when the model path yields nothing. A nil itinerary with a nil error
// means the scan found nothing usable.
type FallbackScanner interface {
	Scan(ctx context.Context, img image.Image) (*Itinerary, error)
}

// ErrBusy is returned when Process is called while a previous
// invocation on the same pipeline is still running.
var ErrBusy = errors.New("extraction already in progress")

// Pipeline sequences OCR, model extraction, airline resolution and
// date parsing into an Itinerary, falling back to the heuristic
// scanner when any earlier stage is unavailable or inconclusive.
//
// Invocations are single-flight: a second Process call while one is
// running is rejected with ErrBusy. No internal stage failure is ever
// surfaced as an error; the only failure signal a caller sees is a nil
// itinerary, with LastError carrying a diagnostic string for logging.
type Pipeline struct {
	recognizer TextRecognizer
	extractor  *Extractor
	resolver   *Resolver
	fallback   FallbackScanner

	flight sync.Mutex // single-flight guard, held for a whole invocation

	mu        sync.Mutex // guards the observable state below
	busy      bool
	lastError string
}

func NewPipeline(recognizer TextRecognizer, extractor *Extractor, resolver *Resolver, fallback FallbackScanner) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		extractor:  extractor,
		resolver:   resolver,
		fallback:   fallback,
	}
}

// Process extracts a flight itinerary from a boarding-pass photo. It
// returns (nil, ErrBusy) when another invocation is in flight, and
// otherwise never returns an error: a nil itinerary means both the
// model path and the fallback scanner came up empty, with the reason
// available from LastError.
func (p *Pipeline) Process(ctx context.Context, data []byte, contentType string) (*Itinerary, error) {
	if !p.flight.TryLock() {
		return nil, ErrBusy
	}
	defer p.flight.Unlock()

	p.begin()
	defer p.finish()

	img, err := DecodeImage(data, contentType)
	if err != nil {
		// No bitmap means the fallback scanner has nothing to work
		// with either.
		p.fail("decoding image: " + err.Error())
		return nil, nil
	}

	text, err := p.recognizeText(ctx, img)
	if err != nil {
		p.fail("recognizing text: " + err.Error())
		return p.scanFallback(ctx, img), nil
	}
	if text == "" {
		slog.Info("No text recognized, using fallback scanner")
		return p.scanFallback(ctx, img), nil
	}

	rec, err := p.extractor.Extract(ctx, strings.Split(text, "\n"))
	if err != nil {
		if !errors.Is(err, ErrModelUnavailable) {
			p.fail(err.Error())
		}
		return p.scanFallback(ctx, img), nil
	}

	return p.finalize(ctx, rec), nil
}

// recognizeText takes the best candidate per detected region and joins
// the regions with newlines.
func (p *Pipeline) recognizeText(ctx context.Context, img image.Image) (string, error) {
	regions, err := p.recognizer.Recognize(ctx, img)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(regions))
	for _, candidates := range regions {
		if len(candidates) == 0 {
			continue
		}
		top := candidates[0]
		for _, c := range candidates[1:] {
			if c.Confidence > top.Confidence {
				top = c
			}
		}
		if top.Text != "" {
			lines = append(lines, top.Text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// scanFallback runs the heuristic scanner and returns its result
// verbatim, whatever its content.
func (p *Pipeline) scanFallback(ctx context.Context, img image.Image) *Itinerary {
	itinerary, err := p.fallback.Scan(ctx, img)
	if err != nil {
		p.fail("fallback scan: " + err.Error())
		return nil
	}
	return itinerary
}

// finalize applies airline resolution and date parsing to a candidate
// record and assembles the itinerary.
func (p *Pipeline) finalize(ctx context.Context, rec CandidateRecord) *Itinerary {
	airline := rec.Airline
	if p.resolver != nil {
		airline = p.resolver.Resolve(ctx, rec.Airline, rec.FlightNumber)
	}

	return &Itinerary{
		FlightNumber:      rec.FlightNumber,
		Airline:           airline,
		PassengerName:     rec.PassengerName,
		DepartureAirport:  rec.DepartureAirport,
		DepartureCity:     rec.DepartureCity,
		DepartureCode:     rec.DepartureCode,
		ArrivalAirport:    rec.ArrivalAirport,
		ArrivalCity:       rec.ArrivalCity,
		ArrivalCode:       rec.ArrivalCode,
		DepartureDateText: rec.DepartureDate,
		DepartureDate:     ParseFlightDate(rec.DepartureDate),
		DepartureTime:     rec.DepartureTime,
		ArrivalTime:       rec.ArrivalTime,
		Seat:              rec.Seat,
		Gate:              rec.Gate,
		Terminal:          rec.Terminal,
		ConfirmationCode:  rec.ConfirmationCode,
		BoardingTime:      rec.BoardingTime,
	}
}

// begin marks the pipeline busy and clears the previous diagnostic.
func (p *Pipeline) begin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = true
	p.lastError = ""
}

func (p *Pipeline) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
}

func (p *Pipeline) fail(message string) {
	slog.Warn("Extraction stage failed", "reason", message)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastError = message
}

// Busy reports whether an invocation is currently running.
func (p *Pipeline) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// LastError returns the diagnostic from the most recent failed stage.
// It is for logging only; callers must not use it for control flow.
func (p *Pipeline) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}
