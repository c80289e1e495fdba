package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/mzhydenko/airport-api/internal/model"
)

// RouteFilter holds the optional query filters for route listings.  Empty
// fields impose no constraint; all present filters are combined with AND.
type RouteFilter struct {
    SourceCity      string // substring of the source airport's closest big city
    DestinationCity string // substring of the destination airport's closest big city
    Airport         string // substring of the source OR destination airport name
}

// RouteRepo encapsulates database queries for the routes table.
type RouteRepo struct {
    db *sql.DB
}

// NewRouteRepo constructs a RouteRepo bound to the given database.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// RouteRow is the list projection: airports are flattened to their names.
type RouteRow struct {
    ID          uint64 `json:"id"`
    Distance    uint32 `json:"distance"`
    Source      string `json:"source"`
    Destination string `json:"destination"`
}

// RouteDetail embeds the full airport projections for the detail view.
type RouteDetail struct {
    ID          uint64     `json:"id"`
    Distance    uint32     `json:"distance"`
    Source      AirportRow `json:"source"`
    Destination AirportRow `json:"destination"`
}

// routeFilterClause builds the WHERE conditions for a RouteFilter.  Text
// matches are case-insensitive substring comparisons; the airport filter is
// an OR across source and destination names, itself ANDed with the city
// filters.  Returned conditions are in a fixed order so the query text is
// stable regardless of which parameters the client supplied.
func routeFilterClause(f RouteFilter) ([]string, []any) {
    where := []string{}
    args := []any{}
    if f.SourceCity != "" {
        where = append(where, "LOWER(src.closest_big_city) LIKE ?")
        args = append(args, "%"+strings.ToLower(f.SourceCity)+"%")
    }
    if f.DestinationCity != "" {
        where = append(where, "LOWER(dst.closest_big_city) LIKE ?")
        args = append(args, "%"+strings.ToLower(f.DestinationCity)+"%")
    }
    if f.Airport != "" {
        where = append(where, "(LOWER(src.name) LIKE ? OR LOWER(dst.name) LIKE ?)")
        sub := "%" + strings.ToLower(f.Airport) + "%"
        args = append(args, sub, sub)
    }
    return where, args
}

// Create inserts a new route and populates the generated ID.
// ErrMissingReference is returned when either airport does not exist.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    const q = `INSERT INTO routes (distance, source_airport_id, destination_airport_id)
               VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, rt.Distance, rt.SourceAirportID, rt.DestinationAirportID)
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
    rt.ID = uint64(id)
    return nil
}

// List returns routes matching the filter, ordered by distance.  DISTINCT
// guards against join-induced duplicates from the OR in the airport filter.
func (r *RouteRepo) List(ctx context.Context, f RouteFilter) ([]RouteRow, error) {
    where, args := routeFilterClause(f)
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    q := `SELECT DISTINCT r.id, r.distance, src.name, dst.name
          FROM routes r
          JOIN airports src ON src.id = r.source_airport_id
          JOIN airports dst ON dst.id = r.destination_airport_id
          WHERE ` + cond + `
          ORDER BY r.distance, r.id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]RouteRow, 0)
    for rows.Next() {
        var rr RouteRow
        if err := rows.Scan(&rr.ID, &rr.Distance, &rr.Source, &rr.Destination); err != nil {
            return nil, err
        }
        out = append(out, rr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetDetail fetches a single route with both airports embedded.
// sql.ErrNoRows is returned when the ID is unknown.
func (r *RouteRepo) GetDetail(ctx context.Context, id uint64) (*RouteDetail, error) {
    const q = `SELECT r.id, r.distance,
                      src.id, src.name, src.closest_big_city, sc.name,
                      dst.id, dst.name, dst.closest_big_city, dc.name
               FROM routes r
               JOIN airports src ON src.id = r.source_airport_id
               JOIN countries sc ON sc.id = src.country_id
               JOIN airports dst ON dst.id = r.destination_airport_id
               JOIN countries dc ON dc.id = dst.country_id
               WHERE r.id = ?`
    var d RouteDetail
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.Distance,
        &d.Source.ID, &d.Source.Name, &d.Source.ClosestBigCity, &d.Source.Country,
        &d.Destination.ID, &d.Destination.Name, &d.Destination.ClosestBigCity, &d.Destination.Country,
    ); err != nil {
        return nil, err
    }
    return &d, nil
}
