package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/mzhydenko/airport-api/internal/model"
)

// Action classifies a request for policy evaluation.  Safe HTTP methods map
// to ActionRead, everything else to ActionWrite.
type Action string

const (
    ActionRead  Action = "read"
    ActionWrite Action = "write"
)

// Policy maps (role, action, resource) to an allow decision.  Keeping the
// rules in one table instead of per-endpoint role checks makes the access
// model auditable in a single place.
type Policy struct {
    rules map[policyKey]bool
}

type policyKey struct {
    role     string
    action   Action
    resource string
}

// NewPolicy returns an empty policy that denies everything.
func NewPolicy() *Policy {
    return &Policy{rules: make(map[policyKey]bool)}
}

// Allow registers an allow rule for every combination of the given roles and
// actions on a resource, and returns the policy for chaining.
func (p *Policy) Allow(resource string, action Action, roles ...string) *Policy {
    for _, role := range roles {
        p.rules[policyKey{role: role, action: action, resource: resource}] = true
    }
    return p
}

// Decide evaluates (role, action, resource).  Unknown combinations deny.
func (p *Policy) Decide(role string, action Action, resource string) bool {
    return p.rules[policyKey{role: role, action: action, resource: resource}]
}

// actionFor maps an HTTP method to a policy action.
func actionFor(method string) Action {
    switch method {
    case http.MethodGet, http.MethodHead, http.MethodOptions:
        return ActionRead
    default:
        return ActionWrite
    }
}

// DefaultPolicy is the access model of the API: authenticated users may read
// the catalog and flights, only admins may write them; orders are readable
// and writable by any authenticated user (ownership is enforced in the
// handlers); airplane images are admin-only in both directions.
func DefaultPolicy() *Policy {
    p := NewPolicy()
    for _, res := range []string{
        "airplane-types", "airplanes", "countries", "airports", "routes", "crews", "flights",
    } {
        p.Allow(res, ActionRead, model.RoleAdmin, model.RoleCustomer)
        p.Allow(res, ActionWrite, model.RoleAdmin)
    }
    p.Allow("orders", ActionRead, model.RoleAdmin, model.RoleCustomer)
    p.Allow("orders", ActionWrite, model.RoleAdmin, model.RoleCustomer)
    p.Allow("airplane-images", ActionWrite, model.RoleAdmin)
    return p
}

// Authorize returns middleware enforcing the policy for one resource.  It
// expects JWTAuth to have stored the role in context; requests whose role is
// missing or denied get 403.
func Authorize(p *Policy, resource string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !p.Decide(role, actionFor(c.Request().Method), resource) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
