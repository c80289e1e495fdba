package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/repository"
)

// departureTimeLayout is the wire format of the departure_time query filter
// and of flight timestamps in request bodies.
const departureTimeLayout = "2006-01-02 15:04"

// FlightHandler serves flight listing with filters, creation and the detail
// view with taken places.
type FlightHandler struct {
    Flights *repository.FlightRepo
}

func NewFlightHandler(f *repository.FlightRepo) *FlightHandler {
    return &FlightHandler{Flights: f}
}

type flightReq struct {
    DepartureTime string   `json:"departure_time"`
    ArrivalTime   string   `json:"arrival_time"`
    AirplaneID    uint64   `json:"airplane"`
    RouteID       uint64   `json:"route"`
    CrewIDs       []uint64 `json:"crew"`
}

// List returns flights matching the optional country, route and
// departure_time filters, newest departure first.  A malformed
// departure_time is rejected rather than silently ignored.
func (h *FlightHandler) List(c echo.Context) error {
    f := repository.FlightFilter{Country: c.QueryParam("country")}

    if raw := c.QueryParam("route"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            fe := model.FieldErrors{}
            fe.Add("route", "must be a positive integer")
            return validationError(c, fe)
        }
        f.RouteID = id
    }
    if raw := c.QueryParam("departure_time"); raw != "" {
        t, err := time.ParseInLocation(departureTimeLayout, raw, time.UTC)
        if err != nil {
            fe := model.FieldErrors{}
            fe.Add("departure_time", "must match format YYYY-MM-DD HH:MM")
            return validationError(c, fe)
        }
        f.DepartureTime = &t
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Flights.List(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, rows)
}

// Create validates timestamps and inserts a flight with its crew set in one
// transaction.
func (h *FlightHandler) Create(c echo.Context) error {
    var req flightReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    fe := model.FieldErrors{}
    dep, depErr := time.ParseInLocation(departureTimeLayout, req.DepartureTime, time.UTC)
    if depErr != nil {
        fe.Add("departure_time", "must match format YYYY-MM-DD HH:MM")
    }
    arr, arrErr := time.ParseInLocation(departureTimeLayout, req.ArrivalTime, time.UTC)
    if arrErr != nil {
        fe.Add("arrival_time", "must match format YYYY-MM-DD HH:MM")
    }
    if depErr == nil && arrErr == nil && !arr.After(dep) {
        fe.Add("arrival_time", "must be after departure_time")
    }
    if req.AirplaneID == 0 {
        fe.Add("airplane", "this field is required")
    }
    if req.RouteID == 0 {
        fe.Add("route", "this field is required")
    }
    if len(fe) > 0 {
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    f := model.Flight{
        DepartureTime: dep,
        ArrivalTime:   arr,
        AirplaneID:    req.AirplaneID,
        RouteID:       req.RouteID,
    }
    if err := h.Flights.Create(ctx, &f, req.CrewIDs); err != nil {
        if err == repository.ErrMissingReference {
            fe := model.FieldErrors{}
            fe.Add("flight", "unknown airplane, route or crew member")
            return validationError(c, fe)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }

    detail, err := h.Flights.GetDetail(ctx, f.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, detail)
}

// Retrieve returns one flight with airplane, route, crew and taken places.
func (h *FlightHandler) Retrieve(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Flights.GetDetail(ctx, id)
    if err != nil {
        return notFoundOr500(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}
