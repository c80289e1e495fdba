package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/mzhydenko/airport-api/internal/model"
)

// FlightFilter holds the optional query filters for flight listings.
// Zero values impose no constraint; present filters are ANDed together.
type FlightFilter struct {
    Country       string     // substring of source OR destination country name
    RouteID       uint64     // exact route id
    DepartureTime *time.Time // exact departure timestamp
}

// FlightRepo encapsulates database queries for flights, their crew set and
// the per-flight seat availability annotation.
type FlightRepo struct {
    db *sql.DB
}

// NewFlightRepo constructs a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span flights, orders and tickets.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// FlightRow is the list projection.  TicketsAvailable is recomputed by the
// query on every read: capacity minus sold tickets, never a stored counter.
type FlightRow struct {
    ID               uint64    `json:"id"`
    DepartureTime    time.Time `json:"departure_time"`
    ArrivalTime      time.Time `json:"arrival_time"`
    AirplaneName     string    `json:"airplane_name"`
    AirplaneImage    *string   `json:"airplane_image"`
    AirplaneCapacity uint32    `json:"airplane_capacity"`
    RouteID          uint64    `json:"route"`
    Crew             []string  `json:"crew"`
    FlightDuration   string    `json:"flight_duration"`
    TicketsAvailable int64     `json:"tickets_available"`
}

// SeatRef is an occupied (row, seat) pair on a flight.
type SeatRef struct {
    Row  uint32 `json:"row"`
    Seat uint32 `json:"seat"`
}

// FlightDetail is the detail projection with airplane and route embedded and
// the list of already-taken places.
type FlightDetail struct {
    ID             uint64      `json:"id"`
    DepartureTime  time.Time   `json:"departure_time"`
    ArrivalTime    time.Time   `json:"arrival_time"`
    Airplane       AirplaneRow `json:"airplane"`
    Route          RouteRow    `json:"route"`
    Crew           []string    `json:"crew"`
    FlightDuration string      `json:"flight_duration"`
    TakenPlaces    []SeatRef   `json:"taken_places"`
}

// flightFilterClause builds WHERE conditions for a FlightFilter in a fixed
// order so the generated SQL does not depend on parameter order.
func flightFilterClause(f FlightFilter) ([]string, []any) {
    where := []string{}
    args := []any{}
    if f.Country != "" {
        where = append(where, "(LOWER(sc.name) LIKE ? OR LOWER(dc.name) LIKE ?)")
        sub := "%" + strings.ToLower(f.Country) + "%"
        args = append(args, sub, sub)
    }
    if f.RouteID != 0 {
        where = append(where, "f.route_id = ?")
        args = append(args, f.RouteID)
    }
    if f.DepartureTime != nil {
        where = append(where, "f.departure_time = ?")
        args = append(args, f.DepartureTime.UTC())
    }
    return where, args
}

// Create inserts a flight and its crew assignments within one transaction.
// ErrMissingReference is returned when the airplane, route or any crew
// member does not exist; nothing is persisted in that case.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight, crewIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const q = `INSERT INTO flights (departure_time, arrival_time, airplane_id, route_id)
               VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, f.DepartureTime.UTC(), f.ArrivalTime.UTC(), f.AirplaneID, f.RouteID)
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
    f.ID = uint64(id)

    for _, crewID := range crewIDs {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO flight_crew (flight_id, crew_id) VALUES (?, ?)",
            f.ID, crewID); err != nil {
            if isMissingReference(err) {
                return ErrMissingReference
            }
            return err
        }
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// List returns flights matching the filter ordered by departure time
// descending.  tickets_available is annotated per row as
// capacity - COUNT(tickets); DISTINCT guards against duplicates introduced
// by the OR inside the country filter.
func (r *FlightRepo) List(ctx context.Context, f FlightFilter) ([]FlightRow, error) {
    where, args := flightFilterClause(f)
    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    q := `SELECT DISTINCT f.id, f.departure_time, f.arrival_time,
                 a.name, a.image_url, a.seat_rows * a.seats_in_row,
                 f.route_id,
                 a.seat_rows * a.seats_in_row -
                     (SELECT COUNT(*) FROM tickets t WHERE t.flight_id = f.id)
          FROM flights f
          JOIN airplanes a ON a.id = f.airplane_id
          JOIN routes r ON r.id = f.route_id
          JOIN airports src ON src.id = r.source_airport_id
          JOIN countries sc ON sc.id = src.country_id
          JOIN airports dst ON dst.id = r.destination_airport_id
          JOIN countries dc ON dc.id = dst.country_id
          WHERE ` + cond + `
          ORDER BY f.departure_time DESC, f.id DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]FlightRow, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var fr FlightRow
        var image sql.NullString
        if err := rows.Scan(
            &fr.ID, &fr.DepartureTime, &fr.ArrivalTime,
            &fr.AirplaneName, &image, &fr.AirplaneCapacity,
            &fr.RouteID, &fr.TicketsAvailable,
        ); err != nil {
            return nil, err
        }
        if image.Valid {
            img := image.String
            fr.AirplaneImage = &img
        }
        fr.FlightDuration = model.FormatDuration(fr.ArrivalTime.Sub(fr.DepartureTime))
        fr.Crew = []string{}
        index[fr.ID] = len(out)
        out = append(out, fr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }

    // Populate crew names for all flights in a single query.
    ids := make([]any, 0, len(out))
    placeholders := make([]string, 0, len(out))
    for _, fr := range out {
        ids = append(ids, fr.ID)
        placeholders = append(placeholders, "?")
    }
    crewQ := `SELECT fc.flight_id, c.first_name, c.last_name
              FROM flight_crew fc
              JOIN crews c ON c.id = fc.crew_id
              WHERE fc.flight_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY fc.flight_id, c.id`
    crows, err := r.db.QueryContext(ctx, crewQ, ids...)
    if err != nil {
        return nil, err
    }
    defer crows.Close()
    for crows.Next() {
        var fid uint64
        var first, last string
        if err := crows.Scan(&fid, &first, &last); err != nil {
            return nil, err
        }
        idx, ok := index[fid]
        if !ok {
            continue
        }
        out[idx].Crew = append(out[idx].Crew, model.Crew{FirstName: first, LastName: last}.FullName())
    }
    if err := crows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetDetail fetches a single flight with airplane, route, crew and the set
// of taken places.  sql.ErrNoRows is returned when the ID is unknown.
func (r *FlightRepo) GetDetail(ctx context.Context, id uint64) (*FlightDetail, error) {
    const q = `SELECT f.id, f.departure_time, f.arrival_time,
                      a.id, a.name, a.seat_rows, a.seats_in_row, t.name,
                      a.seat_rows * a.seats_in_row, a.image_url,
                      r.id, r.distance, src.name, dst.name
               FROM flights f
               JOIN airplanes a ON a.id = f.airplane_id
               JOIN airplane_types t ON t.id = a.airplane_type_id
               JOIN routes r ON r.id = f.route_id
               JOIN airports src ON src.id = r.source_airport_id
               JOIN airports dst ON dst.id = r.destination_airport_id
               WHERE f.id = ?`
    var d FlightDetail
    var image sql.NullString
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.DepartureTime, &d.ArrivalTime,
        &d.Airplane.ID, &d.Airplane.Name, &d.Airplane.Rows, &d.Airplane.SeatsInRow, &d.Airplane.AirplaneType,
        &d.Airplane.Capacity, &image,
        &d.Route.ID, &d.Route.Distance, &d.Route.Source, &d.Route.Destination,
    ); err != nil {
        return nil, err
    }
    if image.Valid {
        img := image.String
        d.Airplane.Image = &img
    }
    d.FlightDuration = model.FormatDuration(d.ArrivalTime.Sub(d.DepartureTime))

    d.Crew = []string{}
    const crewQ = `SELECT c.first_name, c.last_name
                   FROM flight_crew fc
                   JOIN crews c ON c.id = fc.crew_id
                   WHERE fc.flight_id = ?
                   ORDER BY c.id`
    crows, err := r.db.QueryContext(ctx, crewQ, id)
    if err != nil {
        return nil, err
    }
    defer crows.Close()
    for crows.Next() {
        var first, last string
        if err := crows.Scan(&first, &last); err != nil {
            return nil, err
        }
        d.Crew = append(d.Crew, model.Crew{FirstName: first, LastName: last}.FullName())
    }
    if err := crows.Err(); err != nil {
        return nil, err
    }

    d.TakenPlaces = []SeatRef{}
    const seatQ = `SELECT seat_row, seat FROM tickets
                   WHERE flight_id = ?
                   ORDER BY seat_row, seat`
    srows, err := r.db.QueryContext(ctx, seatQ, id)
    if err != nil {
        return nil, err
    }
    defer srows.Close()
    for srows.Next() {
        var s SeatRef
        if err := srows.Scan(&s.Row, &s.Seat); err != nil {
            return nil, err
        }
        d.TakenPlaces = append(d.TakenPlaces, s)
    }
    if err := srows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}

// SeatGridTx loads the airplane grid for a flight within a transaction so
// order creation validates against a consistent snapshot.  sql.ErrNoRows is
// returned when the flight does not exist.
func (r *FlightRepo) SeatGridTx(ctx context.Context, tx *sql.Tx, flightID uint64) (model.SeatGrid, error) {
    const q = `SELECT a.seat_rows, a.seats_in_row
               FROM flights f
               JOIN airplanes a ON a.id = f.airplane_id
               WHERE f.id = ?`
    var g model.SeatGrid
    if err := tx.QueryRowContext(ctx, q, flightID).Scan(&g.Rows, &g.SeatsInRow); err != nil {
        return model.SeatGrid{}, err
    }
    return g, nil
}
