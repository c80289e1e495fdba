package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzhydenko/airport-api/internal/model"
)

func TestDefaultPolicyDecisions(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		role     string
		action   Action
		resource string
		want     bool
	}{
		{"customer reads catalog", model.RoleCustomer, ActionRead, "airplanes", true},
		{"customer cannot write catalog", model.RoleCustomer, ActionWrite, "airplanes", false},
		{"admin writes catalog", model.RoleAdmin, ActionWrite, "airplanes", true},
		{"customer reads flights", model.RoleCustomer, ActionRead, "flights", true},
		{"customer cannot write flights", model.RoleCustomer, ActionWrite, "flights", false},
		{"customer creates orders", model.RoleCustomer, ActionWrite, "orders", true},
		{"customer cannot upload images", model.RoleCustomer, ActionWrite, "airplane-images", false},
		{"admin uploads images", model.RoleAdmin, ActionWrite, "airplane-images", true},
		{"unknown role denied", "GUEST", ActionRead, "airplanes", false},
		{"unknown resource denied", model.RoleAdmin, ActionWrite, "warehouses", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Decide(tt.role, tt.action, tt.resource))
		})
	}
}

func TestActionForMethod(t *testing.T) {
	assert.Equal(t, ActionRead, actionFor(http.MethodGet))
	assert.Equal(t, ActionRead, actionFor(http.MethodHead))
	assert.Equal(t, ActionWrite, actionFor(http.MethodPost))
	assert.Equal(t, ActionWrite, actionFor(http.MethodPut))
	assert.Equal(t, ActionWrite, actionFor(http.MethodDelete))
}

func TestAuthorizeMiddleware(t *testing.T) {
	e := echo.New()
	p := DefaultPolicy()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(method, role string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/airplanes", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		h := Authorize(p, "airplanes")(ok)
		require.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(http.MethodGet, model.RoleCustomer).Code)
	assert.Equal(t, http.StatusForbidden, run(http.MethodPost, model.RoleCustomer).Code)
	assert.Equal(t, http.StatusOK, run(http.MethodPost, model.RoleAdmin).Code)
	// role missing from context (JWTAuth not run) denies as well
	assert.Equal(t, http.StatusForbidden, run(http.MethodGet, "").Code)
}
