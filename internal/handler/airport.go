package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/repository"
)

// AirportHandler serves airport listing and creation.
type AirportHandler struct {
    Airports *repository.AirportRepo
}

func NewAirportHandler(a *repository.AirportRepo) *AirportHandler {
    return &AirportHandler{Airports: a}
}

type airportReq struct {
    Name           string `json:"name"`
    ClosestBigCity string `json:"closest_big_city"`
    CountryID      uint64 `json:"country"`
}

// List returns all airports ordered by name with the country flattened.
func (h *AirportHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rows, err := h.Airports.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, rows)
}

// Create inserts a new airport referencing an existing country.
func (h *AirportHandler) Create(c echo.Context) error {
    var req airportReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    req.ClosestBigCity = strings.TrimSpace(req.ClosestBigCity)

    fe := model.FieldErrors{}
    if req.Name == "" {
        fe.Add("name", "this field is required")
    }
    if req.ClosestBigCity == "" {
        fe.Add("closest_big_city", "this field is required")
    }
    if req.CountryID == 0 {
        fe.Add("country", "this field is required")
    }
    if len(fe) > 0 {
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a := model.Airport{Name: req.Name, ClosestBigCity: req.ClosestBigCity, CountryID: req.CountryID}
    if err := h.Airports.Create(ctx, &a); err != nil {
        if err == repository.ErrMissingReference {
            fe := model.FieldErrors{}
            fe.Add("country", "unknown country")
            return validationError(c, fe)
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }

    row, err := h.Airports.GetRow(ctx, a.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, row)
}
