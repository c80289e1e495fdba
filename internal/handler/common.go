package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
)

// getUserID extracts the user_id set by the JWT middleware and converts it to
// uint64 regardless of how the claim was decoded.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseID parses a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
    raw := c.Param(name)
    id, err := strconv.ParseUint(raw, 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}

// validationError renders per-field validation messages as a 400 response
// with the shape {"errors": {"field": ["message", ...]}}.
func validationError(c echo.Context, fe model.FieldErrors) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"errors": fe})
}
