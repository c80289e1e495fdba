package repository

import (
    "context"
    "database/sql"

    "github.com/mzhydenko/airport-api/internal/model"
)

// CrewRepo encapsulates database queries for the crews table.
type CrewRepo struct {
    db *sql.DB
}

// NewCrewRepo constructs a CrewRepo bound to the given database.
func NewCrewRepo(db *sql.DB) *CrewRepo { return &CrewRepo{db: db} }

// Create inserts a new crew member and populates the generated ID.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
    const q = "INSERT INTO crews (first_name, last_name) VALUES (?, ?)"
    res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}

// List returns all crew members ordered by ID.
func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
    const q = "SELECT id, first_name, last_name FROM crews ORDER BY id"
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Crew, 0)
    for rows.Next() {
        var c model.Crew
        if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
