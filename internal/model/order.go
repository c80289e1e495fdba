package model

import "time"

// Order groups one or more tickets purchased by a user in a single atomic
// transaction.  Orders are never mutated or deleted through the API; the
// creation timestamp is assigned by the database.
type Order struct {
    ID        uint64    // orders.id
    UserID    uint64    // orders.user_id
    CreatedAt time.Time // orders.created_at
}

// Ticket occupies one physical seat on one flight.  The (flight, row, seat)
// triple is unique; the database enforces it so concurrent bookings of the
// same seat cannot both commit.
type Ticket struct {
    ID       uint64 // tickets.id
    Row      uint32 // tickets.seat_row
    Seat     uint32 // tickets.seat
    FlightID uint64 // tickets.flight_id
    OrderID  uint64 // tickets.order_id
}
