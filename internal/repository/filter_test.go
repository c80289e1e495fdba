package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRouteFilterClause(t *testing.T) {
	t.Run("empty filter imposes no constraint", func(t *testing.T) {
		where, args := routeFilterClause(RouteFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("city filters are case-insensitive substrings", func(t *testing.T) {
		where, args := routeFilterClause(RouteFilter{SourceCity: "LoNdOn"})
		assert.Equal(t, []string{"LOWER(src.closest_big_city) LIKE ?"}, where)
		assert.Equal(t, []any{"%london%"}, args)
	})

	t.Run("airport filter matches source or destination name", func(t *testing.T) {
		where, args := routeFilterClause(RouteFilter{Airport: "Heathrow"})
		assert.Equal(t, []string{"(LOWER(src.name) LIKE ? OR LOWER(dst.name) LIKE ?)"}, where)
		assert.Equal(t, []any{"%heathrow%", "%heathrow%"}, args)
	})

	t.Run("filters combine with AND in a stable order", func(t *testing.T) {
		a := RouteFilter{SourceCity: "London", Airport: "Heathrow"}
		b := RouteFilter{Airport: "Heathrow", SourceCity: "London"}
		whereA, argsA := routeFilterClause(a)
		whereB, argsB := routeFilterClause(b)
		// the generated clause is identical regardless of how the caller
		// populated the struct, so applying filters is order-independent
		assert.Equal(t, whereA, whereB)
		assert.Equal(t, argsA, argsB)
		assert.Len(t, whereA, 2)
	})
}

func TestFlightFilterClause(t *testing.T) {
	dep := time.Date(2021, 8, 25, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    FlightFilter
		wantWhere []string
		wantArgs  []any
	}{
		{
			name: "no filters",
		},
		{
			name:      "country substring against both endpoints",
			filter:    FlightFilter{Country: "Germ"},
			wantWhere: []string{"(LOWER(sc.name) LIKE ? OR LOWER(dc.name) LIKE ?)"},
			wantArgs:  []any{"%germ%", "%germ%"},
		},
		{
			name:      "route id exact",
			filter:    FlightFilter{RouteID: 2},
			wantWhere: []string{"f.route_id = ?"},
			wantArgs:  []any{uint64(2)},
		},
		{
			name:      "departure time exact",
			filter:    FlightFilter{DepartureTime: &dep},
			wantWhere: []string{"f.departure_time = ?"},
			wantArgs:  []any{dep},
		},
		{
			name:   "all combined",
			filter: FlightFilter{Country: "Germany", RouteID: 2, DepartureTime: &dep},
			wantWhere: []string{
				"(LOWER(sc.name) LIKE ? OR LOWER(dc.name) LIKE ?)",
				"f.route_id = ?",
				"f.departure_time = ?",
			},
			wantArgs: []any{"%germany%", "%germany%", uint64(2), dep},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := flightFilterClause(tt.filter)
			if tt.wantWhere == nil {
				assert.Empty(t, where)
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
