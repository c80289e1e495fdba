package model

import (
    "fmt"
    "time"
)

// Flight schedules an airplane on a route between two timestamps and carries
// a crew set.  Arrival must be after departure.  Flights are listed newest
// departure first.
//
// Fields:
//  ID            – primary key identifier.
//  DepartureTime – departure timestamp (UTC).
//  ArrivalTime   – arrival timestamp (UTC), after DepartureTime.
//  AirplaneID    – operating airplane.
//  RouteID       – route being flown.
type Flight struct {
    ID            uint64    // flights.id
    DepartureTime time.Time // flights.departure_time
    ArrivalTime   time.Time // flights.arrival_time
    AirplaneID    uint64    // flights.airplane_id
    RouteID       uint64    // flights.route_id
}

// Duration returns the flight duration.
func (f Flight) Duration() time.Duration {
    return f.ArrivalTime.Sub(f.DepartureTime)
}

// FormatDuration renders a duration as "HH:MM".  This is the single canonical
// representation used by both list and detail views.
func FormatDuration(d time.Duration) string {
    minutes := int(d.Minutes())
    if minutes < 0 {
        minutes = 0
    }
    return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
