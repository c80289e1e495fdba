package model

// Country is a reference record with a unique name.
type Country struct {
    ID   uint64 // countries.id
    Name string // countries.name
}

// Airport is a named airport together with the closest big city it serves.
// Airports belong to a country and are listed ordered by name.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – airport name.
//  ClosestBigCity – nearest major city, used by the route city filters.
//  CountryID      – owning country.
type Airport struct {
    ID             uint64 // airports.id
    Name           string // airports.name
    ClosestBigCity string // airports.closest_big_city
    CountryID      uint64 // airports.country_id
}
