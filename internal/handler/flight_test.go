package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/mzhydenko/airport-api/internal/repository"
)

func newFlightHandler(t *testing.T) *FlightHandler {
    t.Helper()
    db, _, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewFlightHandler(repository.NewFlightRepo(db))
}

func flightContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestListFlightsRejectsMalformedDepartureTime(t *testing.T) {
    h := newFlightHandler(t)

    c, rec := flightContext(http.MethodGet, "/api/airport/flights?departure_time=tomorrow", "")
    require.NoError(t, h.List(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Contains(t, resp.Errors, "departure_time")
}

func TestListFlightsRejectsNonNumericRoute(t *testing.T) {
    h := newFlightHandler(t)

    c, rec := flightContext(http.MethodGet, "/api/airport/flights?route=abc", "")
    require.NoError(t, h.List(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFlightArrivalMustFollowDeparture(t *testing.T) {
    h := newFlightHandler(t)

    body := `{"departure_time":"2026-09-01 12:00","arrival_time":"2026-09-01 10:00","airplane":1,"route":1}`
    c, rec := flightContext(http.MethodPost, "/api/airport/flights", body)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Contains(t, resp.Errors, "arrival_time")
    assert.Contains(t, resp.Errors["arrival_time"][0], "after departure_time")
}

func TestCreateFlightRequiresReferences(t *testing.T) {
    h := newFlightHandler(t)

    body := `{"departure_time":"2026-09-01 12:00","arrival_time":"2026-09-01 14:30"}`
    c, rec := flightContext(http.MethodPost, "/api/airport/flights", body)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Contains(t, resp.Errors, "airplane")
    assert.Contains(t, resp.Errors, "route")
}
