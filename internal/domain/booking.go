package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusEnroute   BookingStatus = "Enroute"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// ActiveStatuses are the statuses that hold a jet's time window against
// new bookings. Enroute does not block.
var ActiveStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusEnroute,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further client-side transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// StatusChange is one entry of the append-only status timeline.
// By is empty for system transitions.
type StatusChange struct {
	Status BookingStatus `json:"status"`
	At     time.Time     `json:"at"`
	By     string        `json:"by,omitempty"`
}

type Booking struct {
	ID            string         `json:"id"`
	ClientID      string         `json:"client_id"`
	JetID         string         `json:"jet_id"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureAt   time.Time      `json:"departure_at"`
	ArrivalAt     time.Time      `json:"arrival_at"`
	FlightHours   float64        `json:"flight_hours"`
	PriceUSD      int64          `json:"price_usd"`
	Status        BookingStatus  `json:"status"`
	StatusHistory []StatusChange `json:"status_history"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Overlaps applies the half-open interval test: [from, to) intersects
// [DepartureAt, ArrivalAt) iff DepartureAt < to && ArrivalAt > from.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return b.DepartureAt.Before(to) && b.ArrivalAt.After(from)
}

// BillableHours clamps the window to a minimum of one billable hour.
func BillableHours(from, to time.Time) float64 {
	h := to.Sub(from).Hours()
	if h < 1 {
		return 1
	}
	return h
}

// RoundHours rounds billable hours to two decimals for storage.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// Price is rounded to whole dollars from the unrounded billable hours.
func Price(hours, hourlyRate float64) int64 {
	return int64(math.Round(hours * hourlyRate))
}
