package extraction

import "time"

// CandidateRecord holds the fields pulled out of a single model
// response. Every field is optional: an empty string means the field
// was not found. Validity of individual values (for example whether the
// airline name is usable) is judged later, not stored here.
type CandidateRecord struct {
	FlightNumber     string
	Airline          string
	PassengerName    string
	DepartureAirport string
	DepartureCity    string
	DepartureCode    string
	ArrivalAirport   string
	ArrivalCity      string
	ArrivalCode      string
	DepartureDate    string
	DepartureTime    string
	ArrivalTime      string
	Seat             string
	Gate             string
	Terminal         string
	ConfirmationCode string
	BoardingTime     string
}

// Empty reports whether no field at all was extracted.
func (c CandidateRecord) Empty() bool {
	return c == CandidateRecord{}
}

// Itinerary is the finished flight record returned by the pipeline.
// It carries the same fields as CandidateRecord plus the departure date
// parsed to a calendar date (zero when it could not be parsed), and its
// airline has been through the resolution step.
type Itinerary struct {
	FlightNumber      string    `json:"flight_number,omitempty"`
	Airline           string    `json:"airline,omitempty"`
	PassengerName     string    `json:"passenger_name,omitempty"`
	DepartureAirport  string    `json:"departure_airport,omitempty"`
	DepartureCity     string    `json:"departure_city,omitempty"`
	DepartureCode     string    `json:"departure_code,omitempty"`
	ArrivalAirport    string    `json:"arrival_airport,omitempty"`
	ArrivalCity       string    `json:"arrival_city,omitempty"`
	ArrivalCode       string    `json:"arrival_code,omitempty"`
	DepartureDateText string    `json:"departure_date_text,omitempty"`
	DepartureDate     time.Time `json:"departure_date,omitempty"`
	DepartureTime     string    `json:"departure_time,omitempty"`
	ArrivalTime       string    `json:"arrival_time,omitempty"`
	Seat              string    `json:"seat,omitempty"`
	Gate              string    `json:"gate,omitempty"`
	Terminal          string    `json:"terminal,omitempty"`
	ConfirmationCode  string    `json:"confirmation_code,omitempty"`
	BoardingTime      string    `json:"boarding_time,omitempty"`
}
