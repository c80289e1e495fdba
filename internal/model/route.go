package model

// Route connects a source airport to a destination airport over a distance in
// kilometres.  Source and destination must differ; routes are listed ordered
// by distance.
//
// Fields:
//  ID                   – primary key identifier.
//  Distance             – route length in kilometres.
//  SourceAirportID      – departure airport.
//  DestinationAirportID – arrival airport.
type Route struct {
    ID                   uint64 // routes.id
    Distance             uint32 // routes.distance
    SourceAirportID      uint64 // routes.source_airport_id
    DestinationAirportID uint64 // routes.destination_airport_id
}
