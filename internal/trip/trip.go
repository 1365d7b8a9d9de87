package trip

import (
	"time"

	"github.com/zombor/trip-tracker/internal/extraction"
)

// Trip represents a stored flight itinerary together with the
// boarding-pass image it was extracted from
type Trip struct {
	ID          string                `json:"id"`
	Itinerary   extraction.Itinerary  `json:"itinerary"`
	Filename    string                `json:"filename"`
	ContentType string                `json:"content_type"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
