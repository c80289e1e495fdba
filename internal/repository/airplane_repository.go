package repository

import (
    "context"
    "database/sql"

    "github.com/mzhydenko/airport-api/internal/model"
)

// AirplaneRepo encapsulates database queries for the airplanes table.
// Airplanes carry the seat grid that ticket validation checks against.
type AirplaneRepo struct {
    db *sql.DB
}

// NewAirplaneRepo constructs an AirplaneRepo bound to the given database.
func NewAirplaneRepo(db *sql.DB) *AirplaneRepo { return &AirplaneRepo{db: db} }

// AirplaneRow is the list projection of an airplane: the type is flattened
// to its name and capacity is computed by the query.
type AirplaneRow struct {
    ID           uint64  `json:"id"`
    Name         string  `json:"name"`
    Rows         uint32  `json:"rows"`
    SeatsInRow   uint32  `json:"seats_in_row"`
    AirplaneType string  `json:"airplane_type"`
    Capacity     uint32  `json:"capacity"`
    Image        *string `json:"image"`
}

// AirplaneDetail is the detail projection: the airplane type is embedded as
// an object instead of a name.
type AirplaneDetail struct {
    ID           uint64  `json:"id"`
    Name         string  `json:"name"`
    Rows         uint32  `json:"rows"`
    SeatsInRow   uint32  `json:"seats_in_row"`
    AirplaneType struct {
        ID   uint64 `json:"id"`
        Name string `json:"name"`
    } `json:"airplane_type"`
    Capacity uint32  `json:"capacity"`
    Image    *string `json:"image"`
}

// Create inserts a new airplane and populates the generated ID.
// ErrMissingReference is returned when the airplane type does not exist.
func (r *AirplaneRepo) Create(ctx context.Context, a *model.Airplane) error {
    const q = `INSERT INTO airplanes (name, seat_rows, seats_in_row, airplane_type_id)
               VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID)
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

// List returns all airplanes joined with their type name.  Capacity is
// annotated in SQL rather than stored so it can never drift from the grid.
func (r *AirplaneRepo) List(ctx context.Context) ([]AirplaneRow, error) {
    const q = `SELECT a.id, a.name, a.seat_rows, a.seats_in_row, t.name,
                      a.seat_rows * a.seats_in_row, a.image_url
               FROM airplanes a
               JOIN airplane_types t ON t.id = a.airplane_type_id
               ORDER BY a.id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AirplaneRow, 0)
    for rows.Next() {
        var a AirplaneRow
        var image sql.NullString
        if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneType, &a.Capacity, &image); err != nil {
            return nil, err
        }
        if image.Valid {
            img := image.String
            a.Image = &img
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetDetail fetches a single airplane with its type embedded.
// sql.ErrNoRows is returned when the ID is unknown.
func (r *AirplaneRepo) GetDetail(ctx context.Context, id uint64) (*AirplaneDetail, error) {
    const q = `SELECT a.id, a.name, a.seat_rows, a.seats_in_row,
                      t.id, t.name,
                      a.seat_rows * a.seats_in_row, a.image_url
               FROM airplanes a
               JOIN airplane_types t ON t.id = a.airplane_type_id
               WHERE a.id = ?`
    var d AirplaneDetail
    var image sql.NullString
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.Name, &d.Rows, &d.SeatsInRow,
        &d.AirplaneType.ID, &d.AirplaneType.Name,
        &d.Capacity, &image,
    ); err != nil {
        return nil, err
    }
    if image.Valid {
        img := image.String
        d.Image = &img
    }
    return &d, nil
}

// UpdateImage stores the relative path of an uploaded airplane image.
// sql.ErrNoRows is returned when the airplane does not exist.
func (r *AirplaneRepo) UpdateImage(ctx context.Context, id uint64, imageURL string) error {
    const q = "UPDATE airplanes SET image_url = ? WHERE id = ?"
    res, err := r.db.ExecContext(ctx, q, imageURL, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // distinguish "unknown airplane" from "image unchanged"
        var exists uint64
        if err := r.db.QueryRowContext(ctx, "SELECT id FROM airplanes WHERE id = ?", id).Scan(&exists); err != nil {
            return err
        }
    }
    return nil
}
