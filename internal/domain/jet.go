package domain

import "time"

type JetCategory string

const (
	JetCategoryLight     JetCategory = "Light"
	JetCategoryMidsize   JetCategory = "Midsize"
	JetCategoryHeavy     JetCategory = "Heavy"
	JetCategoryUltraLong JetCategory = "UltraLong"
)

func (c JetCategory) Valid() bool {
	switch c {
	case JetCategoryLight, JetCategoryMidsize, JetCategoryHeavy, JetCategoryUltraLong:
		return true
	}
	return false
}

type Jet struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Manufacturer string      `json:"manufacturer,omitempty"`
	Category     JetCategory `json:"category"`
	Seats        int         `json:"seats"`
	RangeNM      int         `json:"range_nm"`
	SpeedKts     int         `json:"speed_kts"`
	HourlyRate   float64     `json:"hourly_rate"`
	BaseAirport  string      `json:"base_airport,omitempty"`
	Amenities    []string    `json:"amenities"`
	Images       []string    `json:"images"`
	Description  string      `json:"description,omitempty"`
	IsAvailable  bool        `json:"is_available"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// JetFilter narrows the public catalogue listing. Zero values mean "no filter".
type JetFilter struct {
	Query         string
	Category      JetCategory
	SeatsMin      int
	SeatsMax      int
	RateMin       float64
	RateMax       float64
	OnlyAvailable bool
	Page          int
	Limit         int
}

// Default reports whether the filter selects the plain active catalogue,
// which is the only listing worth caching.
func (f JetFilter) Default() bool {
	return f.Query == "" && f.Category == "" && f.SeatsMin == 0 && f.SeatsMax == 0 &&
		f.RateMin == 0 && f.RateMax == 0 && !f.OnlyAvailable
}
