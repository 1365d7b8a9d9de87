package trip

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/trip-tracker/internal/extraction"
)

// Pipeline is the boarding-pass extraction pipeline the service feeds
// uploads into. A nil itinerary with a nil error means extraction came
// up empty; LastError then carries the diagnostic.
type Pipeline interface {
	Process(ctx context.Context, data []byte, contentType string) (*extraction.Itinerary, error)
	LastError() string
}

// IDGenerator generates unique IDs for trips
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles trip operations
type Service struct {
	db          DB
	pipeline    Pipeline
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, pipeline Pipeline, storage Storage) *Service {
	return &Service{
		db:          db,
		pipeline:    pipeline,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, pipeline Pipeline, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		pipeline:    pipeline,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Remove special characters, keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	// Replace multiple spaces with single space
	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	// Truncate to reasonable length (50 chars for base, plus extension)
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "boarding-pass"
	}

	return base + ext
}

// ProcessBoardingPass uploads a boarding-pass image, runs it through
// the extraction pipeline, and saves the resulting trip
func (s *Service) ProcessBoardingPass(ctx context.Context, filename string, data []byte, contentType string) (*Trip, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	// Sanitize filename to clean up phone-generated long filenames
	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	itinerary, err := s.pipeline.Process(ctx, data, contentType)
	if err != nil {
		// Only a concurrent invocation produces an error here
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("processing boarding pass: %w", err)
	}
	if itinerary == nil {
		slog.Error("Failed to extract itinerary",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"diagnostic", s.pipeline.LastError(),
		)
		// Clean up the saved file since extraction found nothing
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("no itinerary could be extracted: %s", s.pipeline.LastError())
	}

	trip := &Trip{
		ID:          id,
		Itinerary:   *itinerary,
		Filename:    savedPath,
		ContentType: contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.SaveTrip(trip); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving trip to database: %w", err)
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID
func (s *Service) GetTrip(id string) (*Trip, error) {
	trip, err := s.db.GetTrip(id)
	if err != nil {
		return nil, fmt.Errorf("getting trip: %w", err)
	}
	return trip, nil
}

// ListTrips returns all trips
func (s *Service) ListTrips() ([]*Trip, error) {
	trips, err := s.db.ListTrips()
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	return trips, nil
}

// DeleteTrip removes a trip and its boarding-pass image
func (s *Service) DeleteTrip(id string) error {
	trip, err := s.db.GetTrip(id)
	if err != nil {
		return fmt.Errorf("getting trip for deletion: %w", err)
	}

	if err := s.storage.Delete(trip.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete file", "filename", trip.Filename, "error", err)
	}

	if err := s.db.DeleteTrip(id); err != nil {
		return fmt.Errorf("deleting trip from database: %w", err)
	}
	return nil
}

// GetTripImage retrieves the boarding-pass image for a trip
func (s *Service) GetTripImage(id string) ([]byte, string, error) {
	trip, err := s.db.GetTrip(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting trip: %w", err)
	}

	data, err := s.storage.Get(trip.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting trip image: %w", err)
	}

	return data, trip.ContentType, nil
}
