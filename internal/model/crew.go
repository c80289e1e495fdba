package model

// Crew is a crew member assigned to flights through the flight_crew table.
type Crew struct {
    ID        uint64 // crews.id
    FirstName string // crews.first_name
    LastName  string // crews.last_name
}

// FullName joins first and last name for display in flight listings.
func (c Crew) FullName() string {
    return c.FirstName + " " + c.LastName
}
