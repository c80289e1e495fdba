package repository

import (
    "context"
    "database/sql"

    "github.com/mzhydenko/airport-api/internal/model"
)

// AirportRepo encapsulates database queries for the airports table.
type AirportRepo struct {
    db *sql.DB
}

// NewAirportRepo constructs an AirportRepo bound to the given database.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

// AirportRow is the list/detail projection of an airport: the country is
// flattened to its name, matching the API response shape.
type AirportRow struct {
    ID             uint64 `json:"id"`
    Name           string `json:"name"`
    ClosestBigCity string `json:"closest_big_city"`
    Country        string `json:"country"`
}

// Create inserts a new airport and populates the generated ID.
// ErrMissingReference is returned when the country does not exist.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
    const q = "INSERT INTO airports (name, closest_big_city, country_id) VALUES (?, ?, ?)"
    res, err := r.db.ExecContext(ctx, q, a.Name, a.ClosestBigCity, a.CountryID)
    if err != nil {
        if isMissingReference(err) {
            return ErrMissingReference
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return nil
}

// List returns all airports joined with their country name, ordered by
// airport name.
func (r *AirportRepo) List(ctx context.Context) ([]AirportRow, error) {
    const q = `SELECT a.id, a.name, a.closest_big_city, c.name
               FROM airports a
               JOIN countries c ON c.id = a.country_id
               ORDER BY a.name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AirportRow, 0)
    for rows.Next() {
        var a AirportRow
        if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Country); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetRow fetches a single airport projection.  sql.ErrNoRows is returned
// when the ID is unknown.
func (r *AirportRepo) GetRow(ctx context.Context, id uint64) (*AirportRow, error) {
    const q = `SELECT a.id, a.name, a.closest_big_city, c.name
               FROM airports a
               JOIN countries c ON c.id = a.country_id
               WHERE a.id = ?`
    var a AirportRow
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.Country); err != nil {
        return nil, err
    }
    return &a, nil
}
