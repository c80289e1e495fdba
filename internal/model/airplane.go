package model

// AirplaneType is a named class of aircraft (e.g. "Boeing 737").  Types are
// reference data created by administrators and never mutated in practice.
// The name is unique across the table.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique type name.
type AirplaneType struct {
    ID   uint64 // airplane_types.id
    Name string // airplane_types.name
}

// Airplane is a physical aircraft with a rectangular seat grid.  Every
// airplane belongs to exactly one AirplaneType and may carry an uploaded
// image.  The grid dimensions are what ticket validation checks against.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – airplane name.
//  Rows           – number of seat rows, >= 1.
//  SeatsInRow     – seats per row, >= 1.
//  AirplaneTypeID – owning airplane type.
//  ImageURL       – relative path of the uploaded image (nil when none).
type Airplane struct {
    ID             uint64  // airplanes.id
    Name           string  // airplanes.name
    Rows           uint32  // airplanes.seat_rows
    SeatsInRow     uint32  // airplanes.seats_in_row
    AirplaneTypeID uint64  // airplanes.airplane_type_id
    ImageURL       *string // airplanes.image_url (nullable)
}

// Capacity returns the total number of seats on the airplane.
func (a Airplane) Capacity() uint32 {
    return a.Rows * a.SeatsInRow
}
