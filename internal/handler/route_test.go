package handler

import (
    "encoding/json"
    "net/http"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/mzhydenko/airport-api/internal/repository"
)

func newRouteHandler(t *testing.T) *RouteHandler {
    t.Helper()
    db, _, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewRouteHandler(repository.NewRouteRepo(db))
}

func TestCreateRouteRejectsSameAirports(t *testing.T) {
    h := newRouteHandler(t)

    body := `{"distance":500,"source":3,"destination":3}`
    c, rec := flightContext(http.MethodPost, "/api/airport/routes", body)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Contains(t, resp.Errors, "destination")
    assert.Contains(t, resp.Errors["destination"][0], "differ from source")
}

func TestCreateRouteRequiresPositiveDistance(t *testing.T) {
    h := newRouteHandler(t)

    body := `{"distance":0,"source":1,"destination":2}`
    c, rec := flightContext(http.MethodPost, "/api/airport/routes", body)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Contains(t, resp.Errors, "distance")
}
