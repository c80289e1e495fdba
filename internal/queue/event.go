// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published after an order commits.  It carries enough
// information for downstream consumers to log or notify without querying the
// primary database.
type OrderPlacedEvent struct {
    OrderID     uint64   `json:"order_id"`
    UserID      uint64   `json:"user_id"`
    TicketCount int      `json:"ticket_count"`
    Seats       []string `json:"seats"`
    CreatedAt   string   `json:"created_at"`
}
