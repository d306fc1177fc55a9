package models

import "time"

// Timestamps are kept as millisecond-precision UTC ISO-8601 strings so that
// lexicographic comparison equals chronological comparison. This matches the
// persisted layout and lets interval checks run on strings directly.
const TimeLayout = "2006-01-02T15:04:05.000Z"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Association is a time-bounded claim that a device is monitoring a plant.
// The validity window is half-open: [StartTime, EndTime), with a nil EndTime
// meaning the association is still ongoing.
type Association struct {
	ID             string         `json:"id"`
	DeviceID       string         `json:"device_id"`
	PlantName      string         `json:"plant_name"`
	PlantSpecies   *string        `json:"plant_species"`
	GPSLatitude    *float64       `json:"gps_latitude"`
	GPSLongitude   *float64       `json:"gps_longitude"`
	GPSAltitude    *float64       `json:"gps_altitude"`
	AdditionalData map[string]any `json:"additional_data"`
	StartTime      string         `json:"start_time"`
	EndTime        *string        `json:"end_time"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// ActiveAt reports whether the association covers the given instant.
func (a *Association) ActiveAt(ts string) bool {
	return a.StartTime <= ts && (a.EndTime == nil || *a.EndTime > ts)
}

// Open reports whether the association has no end yet.
func (a *Association) Open() bool {
	return a.EndTime == nil
}

// HasLocation reports whether both GPS coordinates are present.
func (a *Association) HasLocation() bool {
	return a.GPSLatitude != nil && a.GPSLongitude != nil
}

// Snapshot is the unit of persistence: every association in insertion order,
// loaded and saved as a whole.
type Snapshot struct {
	Associations []Association `json:"associations"`
}
