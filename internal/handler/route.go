package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/repository"
)

// RouteHandler serves route listing with city/airport filters, creation and
// the detail view with both airports embedded.
type RouteHandler struct {
    Routes *repository.RouteRepo
}

func NewRouteHandler(r *repository.RouteRepo) *RouteHandler {
    return &RouteHandler{Routes: r}
}

type routeReq struct {
    Distance             int64  `json:"distance"`
    SourceAirportID      uint64 `json:"source"`
    DestinationAirportID uint64 `json:"destination"`
}

// List returns routes matching the optional source_city, destination_city
// and airport query filters, ordered by distance.
func (h *RouteHandler) List(c echo.Context) error {
    f := repository.RouteFilter{
        SourceCity:      c.QueryParam("source_city"),
        DestinationCity: c.QueryParam("destination_city"),
        Airport:         c.QueryParam("airport"),
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Routes.List(ctx, f)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, rows)
}

// Create inserts a new route.  Source and destination must be existing
// airports and must differ from each other.
func (h *RouteHandler) Create(c echo.Context) error {
    var req routeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    fe := model.FieldErrors{}
    if req.Distance < 1 {
        fe.Add("distance", "must be greater than or equal to 1")
    }
    if req.SourceAirportID == 0 {
        fe.Add("source", "this field is required")
    }
    if req.DestinationAirportID == 0 {
        fe.Add("destination", "this field is required")
    }
    if req.SourceAirportID != 0 && req.SourceAirportID == req.DestinationAirportID {
        fe.Add("destination", "must differ from source")
    }
    if len(fe) > 0 {
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rt := model.Route{
        Distance:             uint32(req.Distance),
        SourceAirportID:      req.SourceAirportID,
        DestinationAirportID: req.DestinationAirportID,
    }
    if err := h.Routes.Create(ctx, &rt); err != nil {
        if err == repository.ErrMissingReference {
            fe := model.FieldErrors{}
            fe.Add("source", "unknown airport")
            return validationError(c, fe)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }

    detail, err := h.Routes.GetDetail(ctx, rt.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, detail)
}

// Retrieve returns one route with both airport objects embedded.
func (h *RouteHandler) Retrieve(c echo.Context) error {
    id, err := parseID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Routes.GetDetail(ctx, id)
    if err != nil {
        return notFoundOr500(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}
