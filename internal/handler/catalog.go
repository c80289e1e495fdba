package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
    "github.com/mzhydenko/airport-api/internal/repository"
)

// CatalogHandler serves the small reference resources: airplane types,
// countries and crew members.  All three follow the same list/create shape.
type CatalogHandler struct {
    Types     *repository.AirplaneTypeRepo
    Countries *repository.CountryRepo
    Crews     *repository.CrewRepo
}

func NewCatalogHandler(t *repository.AirplaneTypeRepo, co *repository.CountryRepo, cr *repository.CrewRepo) *CatalogHandler {
    return &CatalogHandler{Types: t, Countries: co, Crews: cr}
}

type namedReq struct {
    Name string `json:"name"`
}

type airplaneTypeResp struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}

// ListAirplaneTypes returns all airplane types ordered by id.
func (h *CatalogHandler) ListAirplaneTypes(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    types, err := h.Types.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]airplaneTypeResp, 0, len(types))
    for _, t := range types {
        out = append(out, airplaneTypeResp{ID: t.ID, Name: t.Name})
    }
    return c.JSON(http.StatusOK, out)
}

// CreateAirplaneType creates a new airplane type with a unique name.
func (h *CatalogHandler) CreateAirplaneType(c echo.Context) error {
    var req namedReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        fe := model.FieldErrors{}
        fe.Add("name", "this field is required")
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t := model.AirplaneType{Name: req.Name}
    if err := h.Types.Create(ctx, &t); err != nil {
        if err == repository.ErrDuplicateName {
            return c.JSON(http.StatusConflict, echo.Map{"error": "name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, airplaneTypeResp{ID: t.ID, Name: t.Name})
}

// ListCountries returns all countries ordered by id.
func (h *CatalogHandler) ListCountries(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    countries, err := h.Countries.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]airplaneTypeResp, 0, len(countries))
    for _, co := range countries {
        out = append(out, airplaneTypeResp{ID: co.ID, Name: co.Name})
    }
    return c.JSON(http.StatusOK, out)
}

// CreateCountry creates a new country with a unique name.
func (h *CatalogHandler) CreateCountry(c echo.Context) error {
    var req namedReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        fe := model.FieldErrors{}
        fe.Add("name", "this field is required")
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    co := model.Country{Name: req.Name}
    if err := h.Countries.Create(ctx, &co); err != nil {
        if err == repository.ErrDuplicateName {
            return c.JSON(http.StatusConflict, echo.Map{"error": "name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, airplaneTypeResp{ID: co.ID, Name: co.Name})
}

type crewReq struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}

type crewResp struct {
    ID        uint64 `json:"id"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    FullName  string `json:"full_name"`
}

// ListCrews returns all crew members ordered by id.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    crews, err := h.Crews.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]crewResp, 0, len(crews))
    for _, cr := range crews {
        out = append(out, crewResp{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName, FullName: cr.FullName()})
    }
    return c.JSON(http.StatusOK, out)
}

// CreateCrew creates a new crew member.
func (h *CatalogHandler) CreateCrew(c echo.Context) error {
    var req crewReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.FirstName = strings.TrimSpace(req.FirstName)
    req.LastName = strings.TrimSpace(req.LastName)
    fe := model.FieldErrors{}
    if req.FirstName == "" {
        fe.Add("first_name", "this field is required")
    }
    if req.LastName == "" {
        fe.Add("last_name", "this field is required")
    }
    if len(fe) > 0 {
        return validationError(c, fe)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cr := model.Crew{FirstName: req.FirstName, LastName: req.LastName}
    if err := h.Crews.Create(ctx, &cr); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
    }
    return c.JSON(http.StatusCreated, crewResp{ID: cr.ID, FirstName: cr.FirstName, LastName: cr.LastName, FullName: cr.FullName()})
}

// notFoundOr500 maps sql.ErrNoRows to 404 and anything else to 500.
func notFoundOr500(c echo.Context, err error) error {
    if err == sql.ErrNoRows {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}
