package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/mzhydenko/airport-api/internal/model"
)

// OrderRepo provides persistence for orders and their tickets.  An order and
// its tickets are always written inside one transaction owned by the caller;
// the repository only exposes *Tx building blocks for the write path.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for opening order transactions.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new order for the user within an existing transaction
// and populates the generated ID and the server-assigned creation time.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
    res, err := tx.ExecContext(ctx, "INSERT INTO orders (user_id) VALUES (?)", o.UserID)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)
    return tx.QueryRowContext(ctx,
        "SELECT created_at FROM orders WHERE id = ?", o.ID).Scan(&o.CreatedAt)
}

// InsertTicketTx inserts one ticket within an existing transaction.  A
// collision on the (flight, row, seat) unique key returns ErrSeatTaken; the
// caller is expected to roll the whole order back.  ErrMissingReference is
// returned when the flight does not exist.
func (r *OrderRepo) InsertTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
    const q = "INSERT INTO tickets (seat_row, seat, flight_id, order_id) VALUES (?, ?, ?, ?)"
    res, err := tx.ExecContext(ctx, q, t.Row, t.Seat, t.FlightID, t.OrderID)
    if err != nil {
        if isDuplicateEntry(err) {
            return ErrSeatTaken
        }
        if isMissingReference(err) {
            return ErrMissingReference
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

// TicketDetail is a ticket row joined with a summary of its flight for
// order listings.
type TicketDetail struct {
    ID            uint64    `json:"id"`
    Row           uint32    `json:"row"`
    Seat          uint32    `json:"seat"`
    FlightID      uint64    `json:"flight"`
    DepartureTime time.Time `json:"departure_time"`
    Source        string    `json:"source"`
    Destination   string    `json:"destination"`
}

// OrderDetail is an order with its tickets, returned by ListByUser and by
// the creation endpoint.
type OrderDetail struct {
    ID        uint64         `json:"id"`
    CreatedAt time.Time      `json:"created_at"`
    Tickets   []TicketDetail `json:"tickets"`
}

// CountByUser returns the number of orders owned by the user.
func (r *OrderRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
    var total int64
    err := r.db.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM orders WHERE user_id = ?", userID).Scan(&total)
    return total, err
}

// ListByUser returns one page of the user's orders, newest first, with all
// tickets attached.  Tickets are fetched for the whole page in one query and
// matched back by order ID.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]OrderDetail, error) {
    const q = `SELECT id, created_at FROM orders
               WHERE user_id = ?
               ORDER BY created_at DESC, id DESC
               LIMIT ? OFFSET ?`
    rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]OrderDetail, 0, limit)
    index := make(map[uint64]int)
    for rows.Next() {
        var d OrderDetail
        if err := rows.Scan(&d.ID, &d.CreatedAt); err != nil {
            return nil, err
        }
        d.Tickets = []TicketDetail{}
        index[d.ID] = len(out)
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }

    ids := make([]any, 0, len(out))
    placeholders := make([]string, 0, len(out))
    for _, d := range out {
        ids = append(ids, d.ID)
        placeholders = append(placeholders, "?")
    }
    ticketQ := `SELECT t.order_id, t.id, t.seat_row, t.seat, t.flight_id,
                       f.departure_time, src.name, dst.name
                FROM tickets t
                JOIN flights f ON f.id = t.flight_id
                JOIN routes r ON r.id = f.route_id
                JOIN airports src ON src.id = r.source_airport_id
                JOIN airports dst ON dst.id = r.destination_airport_id
                WHERE t.order_id IN (` + strings.Join(placeholders, ",") + `)
                ORDER BY t.order_id, t.seat_row, t.seat`
    trows, err := r.db.QueryContext(ctx, ticketQ, ids...)
    if err != nil {
        return nil, err
    }
    defer trows.Close()
    for trows.Next() {
        var orderID uint64
        var td TicketDetail
        if err := trows.Scan(&orderID, &td.ID, &td.Row, &td.Seat, &td.FlightID,
            &td.DepartureTime, &td.Source, &td.Destination); err != nil {
            return nil, err
        }
        idx, ok := index[orderID]
        if !ok {
            continue
        }
        out[idx].Tickets = append(out[idx].Tickets, td)
    }
    if err := trows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetDetail loads a single order with tickets, enforcing ownership.
// sql.ErrNoRows is returned when the order does not exist for this user.
func (r *OrderRepo) GetDetail(ctx context.Context, orderID, userID uint64) (*OrderDetail, error) {
    var d OrderDetail
    err := r.db.QueryRowContext(ctx,
        "SELECT id, created_at FROM orders WHERE id = ? AND user_id = ?",
        orderID, userID).Scan(&d.ID, &d.CreatedAt)
    if err != nil {
        return nil, err
    }
    d.Tickets = []TicketDetail{}
    const ticketQ = `SELECT t.id, t.seat_row, t.seat, t.flight_id,
                            f.departure_time, src.name, dst.name
                     FROM tickets t
                     JOIN flights f ON f.id = t.flight_id
                     JOIN routes r ON r.id = f.route_id
                     JOIN airports src ON src.id = r.source_airport_id
                     JOIN airports dst ON dst.id = r.destination_airport_id
                     WHERE t.order_id = ?
                     ORDER BY t.seat_row, t.seat`
    rows, err := r.db.QueryContext(ctx, ticketQ, d.ID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var td TicketDetail
        if err := rows.Scan(&td.ID, &td.Row, &td.Seat, &td.FlightID,
            &td.DepartureTime, &td.Source, &td.Destination); err != nil {
            return nil, err
        }
        d.Tickets = append(d.Tickets, td)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return &d, nil
}
