package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/mzhydenko/airport-api/internal/repository"
)

func newOrderHandler(t *testing.T) (*OrderHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewOrderHandler(repository.NewOrderRepo(db), repository.NewFlightRepo(db)), mock
}

func orderContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(7))
    c.Set("role", "CUSTOMER")
    return c, rec
}

func TestCreateOrderRequiresTickets(t *testing.T) {
    h, mock := newOrderHandler(t)

    c, rec := orderContext(http.MethodPost, "/api/airport/orders", `{"tickets":[]}`)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Contains(t, resp.Errors, "tickets")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRowOutOfRange(t *testing.T) {
    h, mock := newOrderHandler(t)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO orders").
        WithArgs(uint64(7)).
        WillReturnResult(sqlmock.NewResult(31, 1))
    mock.ExpectQuery("SELECT created_at FROM orders").
        WithArgs(uint64(31)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
            AddRow(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)))
    mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"seat_rows", "seats_in_row"}).AddRow(30, 6))
    mock.ExpectRollback()

    c, rec := orderContext(http.MethodPost, "/api/airport/orders",
        `{"tickets":[{"row":31,"seat":2,"flight":3}]}`)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Contains(t, resp.Errors, "tickets.0.row")
    assert.Contains(t, resp.Errors["tickets.0.row"][0], "(1, 30)")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderUnknownFlight(t *testing.T) {
    h, mock := newOrderHandler(t)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO orders").
        WithArgs(uint64(7)).
        WillReturnResult(sqlmock.NewResult(5, 1))
    mock.ExpectQuery("SELECT created_at FROM orders").
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
            AddRow(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)))
    mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"seat_rows", "seats_in_row"})) // no rows
    mock.ExpectRollback()

    c, rec := orderContext(http.MethodPost, "/api/airport/orders",
        `{"tickets":[{"row":1,"seat":1,"flight":99}]}`)
    require.NoError(t, h.Create(c))

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    var resp struct {
        Errors map[string][]string `json:"errors"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Contains(t, resp.Errors, "tickets.0.flight")
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersClampsPageSize(t *testing.T) {
    h, mock := newOrderHandler(t)

    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
    mock.ExpectQuery("SELECT id, created_at FROM orders").
        WithArgs(uint64(7), 100, 0).
        WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

    c, rec := orderContext(http.MethodGet, "/api/airport/orders?page_size=500", "")
    require.NoError(t, h.List(c))

    assert.Equal(t, http.StatusOK, rec.Code)
    var resp orderPage
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, 100, resp.PageSize)
    assert.Equal(t, int64(0), resp.Count)
    assert.Empty(t, resp.Results)
    assert.NoError(t, mock.ExpectationsWereMet())
}
