package repository

import (
    "context"
    "database/sql"

    "github.com/mzhydenko/airport-api/internal/model"
)

// AirplaneTypeRepo encapsulates database queries for the airplane_types
// table.  Types are flat reference records with a unique name.
type AirplaneTypeRepo struct {
    db *sql.DB
}

// NewAirplaneTypeRepo constructs an AirplaneTypeRepo bound to the given database.
func NewAirplaneTypeRepo(db *sql.DB) *AirplaneTypeRepo { return &AirplaneTypeRepo{db: db} }

// Create inserts a new airplane type and populates the generated ID.
// ErrDuplicateName is returned when the name is already present.
func (r *AirplaneTypeRepo) Create(ctx context.Context, t *model.AirplaneType) error {
    const q = "INSERT INTO airplane_types (name) VALUES (?)"
    res, err := r.db.ExecContext(ctx, q, t.Name)
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
    t.ID = uint64(id)
    return nil
}

// List returns all airplane types ordered by ID.
func (r *AirplaneTypeRepo) List(ctx context.Context) ([]model.AirplaneType, error) {
    const q = "SELECT id, name FROM airplane_types ORDER BY id"
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.AirplaneType, 0)
    for rows.Next() {
        var t model.AirplaneType
        if err := rows.Scan(&t.ID, &t.Name); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID fetches a single airplane type.  sql.ErrNoRows is returned when
// the ID is unknown.
func (r *AirplaneTypeRepo) GetByID(ctx context.Context, id uint64) (*model.AirplaneType, error) {
    const q = "SELECT id, name FROM airplane_types WHERE id = ?"
    var t model.AirplaneType
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name); err != nil {
        return nil, err
    }
    return &t, nil
}
