package handler

import (
    "context"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/queue"
    "github.com/mzhydenko/airport-api/internal/repository"
    queuepub "github.com/mzhydenko/airport-api/internal/service"
)

const (
    defaultPageSize = 10
    maxPageSize     = 100
)

// OrderHandler serves order listing and atomic order creation for the
// authenticated user.
type OrderHandler struct {
    Orders  *repository.OrderRepo
    Flights *repository.FlightRepo
}

func NewOrderHandler(o *repository.OrderRepo, f *repository.FlightRepo) *OrderHandler {
    return &OrderHandler{Orders: o, Flights: f}
}

type ticketReq struct {
    Row    int64  `json:"row"`
    Seat   int64  `json:"seat"`
    Flight uint64 `json:"flight"`
}

type orderReq struct {
    Tickets []ticketReq `json:"tickets"`
}

type orderPage struct {
    Count    int64                    `json:"count"`
    Page     int                      `json:"page"`
    PageSize int                      `json:"page_size"`
    Results  []repository.OrderDetail `json:"results"`
}

// List returns one page of the current user's orders, newest first.  page
// and page_size are optional query parameters; page_size is clamped to 100.
func (h *OrderHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    page := 1
    if raw := c.QueryParam("page"); raw != "" {
        if n, err := strconv.Atoi(raw); err == nil && n > 0 {
            page = n
        }
    }
    size := defaultPageSize
    if raw := c.QueryParam("page_size"); raw != "" {
        if n, err := strconv.Atoi(raw); err == nil && n > 0 {
            size = n
        }
    }
    if size > maxPageSize {
        size = maxPageSize
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    total, err := h.Orders.CountByUser(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    results, err := h.Orders.ListByUser(ctx, uid, size, (page-1)*size)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, orderPage{Count: total, Page: page, PageSize: size, Results: results})
}

// Retrieve returns one of the current user's orders with its tickets.
// Another user's order is indistinguishable from a missing one.
func (h *OrderHandler) Retrieve(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Orders.GetDetail(ctx, id, uid)
    if err != nil {
        return notFoundOr500(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}

// Create books all requested tickets in one transaction.  Every ticket is
// validated against its flight's seat grid before insertion; any failure
// (validation, unknown flight, seat already taken) rolls the whole order
// back so partial orders can never be observed.
func (h *OrderHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req orderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(req.Tickets) == 0 {
        fe := model.FieldErrors{}
        fe.Add("tickets", "at least one ticket is required")
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    tx, err := h.Orders.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    order := model.Order{UserID: uid}
    if err := h.Orders.CreateTx(ctx, tx, &order); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }

    // One grid lookup per distinct flight in the order.
    grids := make(map[uint64]model.SeatGrid)
    tickets := make([]model.Ticket, 0, len(req.Tickets))
    for i, t := range req.Tickets {
        if t.Flight == 0 {
            fe := model.FieldErrors{}
            fe.Add(fmt.Sprintf("tickets.%d.flight", i), "this field is required")
            return validationError(c, fe)
        }
        grid, ok := grids[t.Flight]
        if !ok {
            grid, err = h.Flights.SeatGridTx(ctx, tx, t.Flight)
            if err != nil {
                fe := model.FieldErrors{}
                fe.Add(fmt.Sprintf("tickets.%d.flight", i), "unknown flight")
                return validationError(c, fe)
            }
            grids[t.Flight] = grid
        }
        if fe := model.ValidateTicket(t.Row, t.Seat, grid); fe != nil {
            prefixed := model.FieldErrors{}
            for field, msgs := range fe {
                for _, m := range msgs {
                    prefixed.Add(fmt.Sprintf("tickets.%d.%s", i, field), m)
                }
            }
            return validationError(c, prefixed)
        }

        ticket := model.Ticket{
            Row:      uint32(t.Row),
            Seat:     uint32(t.Seat),
            FlightID: t.Flight,
            OrderID:  order.ID,
        }
        if err := h.Orders.InsertTicketTx(ctx, tx, &ticket); err != nil {
            switch err {
            case repository.ErrSeatTaken:
                fe := model.FieldErrors{}
                fe.Add(fmt.Sprintf("tickets.%d", i), "this place is already taken")
                return validationError(c, fe)
            case repository.ErrMissingReference:
                fe := model.FieldErrors{}
                fe.Add(fmt.Sprintf("tickets.%d.flight", i), "unknown flight")
                return validationError(c, fe)
            default:
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
            }
        }
        tickets = append(tickets, ticket)
    }

    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
    }
    committed = true

    // Fire-and-forget notification; booking success never depends on the broker.
    go func(o model.Order, ts []model.Ticket) {
        ev := queue.OrderPlacedEvent{
            OrderID:     o.ID,
            UserID:      o.UserID,
            TicketCount: len(ts),
            CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
        }
        for _, t := range ts {
            ev.Seats = append(ev.Seats, fmt.Sprintf("flight %d row %d seat %d", t.FlightID, t.Row, t.Seat))
        }
        pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer pubCancel()
        _ = queuepub.PublishOrderPlaced(pubCtx, ev)
    }(order, tickets)

    detail, err := h.Orders.GetDetail(ctx, order.ID, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, detail)
}
