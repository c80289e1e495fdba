package model

import (
    "fmt"
    "sort"
    "strings"
)

// FieldErrors collects validation messages keyed by field name.  Handlers
// render it as {"errors": {"field": ["msg", ...]}} with HTTP 400 so clients
// see every offending field at once.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, msg string) {
    fe[field] = append(fe[field], msg)
}

// Error renders the messages in field order; FieldErrors satisfies the error
// interface so it can travel through repository call chains.
func (fe FieldErrors) Error() string {
    fields := make([]string, 0, len(fe))
    for f := range fe {
        fields = append(fields, f)
    }
    sort.Strings(fields)
    parts := make([]string, 0, len(fields))
    for _, f := range fields {
        parts = append(parts, f+": "+strings.Join(fe[f], "; "))
    }
    return strings.Join(parts, " | ")
}

// SeatGrid is the addressable row x seats-in-row space of an airplane.
type SeatGrid struct {
    Rows       uint32
    SeatsInRow uint32
}

// ValidateTicket range-checks a requested seat against an airplane's grid.
// Row must be in [1, grid.Rows] and seat in [1, grid.SeatsInRow]; both fields
// are checked independently so a request that violates both reports both.
// It returns nil when the seat is inside the grid.  Uniqueness of
// (flight, row, seat) is a storage-layer constraint and is not checked here.
func ValidateTicket(row, seat int64, grid SeatGrid) FieldErrors {
    fe := FieldErrors{}
    if row < 1 || row > int64(grid.Rows) {
        fe.Add("row", fmt.Sprintf(
            "row number must be in available range: (1, rows): (1, %d)", grid.Rows))
    }
    if seat < 1 || seat > int64(grid.SeatsInRow) {
        fe.Add("seat", fmt.Sprintf(
            "seat number must be in available range: (1, seats_in_row): (1, %d)", grid.SeatsInRow))
    }
    if len(fe) == 0 {
        return nil
    }
    return fe
}
