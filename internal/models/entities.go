package models

// HourRange is a half-open [Start, End) opening-hours window.
type HourRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Restaurant struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	ZoneID     string      `json:"zone_id"`
	Profile    string      `json:"profile"`
	OpenRanges []HourRange `json:"open_ranges"`
	PrepMean   float64     `json:"prep_mean"` // seconds
	PrepStd    float64     `json:"prep_std"`  // seconds
}

// IsOpenAt reports whether the restaurant is open at the given hour of day.
func (r *Restaurant) IsOpenAt(hour int) bool {
	for _, w := range r.OpenRanges {
		if hour >= w.Start && hour < w.End {
			return true
		}
	}
	return false
}

// Courier is the immutable identity of a courier; its mutable availability
// lives in CourierState and is owned by the assignment tracker.
type Courier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HomeZoneID string `json:"home_zone_id"`
}

// CourierState tracks where a courier currently is and when they become
// free again (epoch milliseconds). The zone is sticky: it stays wherever
// the last delivery ended, never snapping back to the home zone.
type CourierState struct {
	ZoneID      string
	AvailableAt int64
}
