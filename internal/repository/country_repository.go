package repository

import (
    "context"
    "database/sql"

    "github.com/mzhydenko/airport-api/internal/model"
)

// CountryRepo encapsulates database queries for the countries table.
type CountryRepo struct {
    db *sql.DB
}

// NewCountryRepo constructs a CountryRepo bound to the given database.
func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{db: db} }

// Create inserts a new country and populates the generated ID.
// ErrDuplicateName is returned when the name already exists.
func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
    const q = "INSERT INTO countries (name) VALUES (?)"
    res, err := r.db.ExecContext(ctx, q, c.Name)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrDuplicateName
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}

// List returns all countries ordered by ID.
func (r *CountryRepo) List(ctx context.Context) ([]model.Country, error) {
    const q = "SELECT id, name FROM countries ORDER BY id"
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Country, 0)
    for rows.Next() {
        var c model.Country
        if err := rows.Scan(&c.ID, &c.Name); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
