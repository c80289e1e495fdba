package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTicket(t *testing.T) {
	grid := SeatGrid{Rows: 30, SeatsInRow: 6}

	tests := []struct {
		name       string
		row, seat  int64
		wantFields []string
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 30, seat: 6},
		{name: "row zero", row: 0, seat: 3, wantFields: []string{"row"}},
		{name: "row above grid", row: 31, seat: 3, wantFields: []string{"row"}},
		{name: "seat zero", row: 10, seat: 0, wantFields: []string{"seat"}},
		{name: "seat above grid", row: 10, seat: 7, wantFields: []string{"seat"}},
		{name: "negative row", row: -1, seat: 1, wantFields: []string{"row"}},
		{name: "both out of range", row: 999, seat: 999, wantFields: []string{"row", "seat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidateTicket(tt.row, tt.seat, grid)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Len(t, fe, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.NotEmpty(t, fe[f], "expected message for field %q", f)
			}
		})
	}
}

func TestValidateTicketReportsBothViolationsTogether(t *testing.T) {
	fe := ValidateTicket(0, 0, SeatGrid{Rows: 5, SeatsInRow: 4})
	require.NotNil(t, fe)
	assert.Contains(t, fe, "row")
	assert.Contains(t, fe, "seat")
	// error string mentions both fields for log output
	assert.Contains(t, fe.Error(), "row")
	assert.Contains(t, fe.Error(), "seat")
}

func TestAirplaneCapacity(t *testing.T) {
	a := Airplane{Rows: 30, SeatsInRow: 6}
	assert.Equal(t, uint32(180), a.Capacity())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "01:30"},
		{2 * time.Hour, "02:00"},
		{25*time.Hour + 5*time.Minute, "25:05"},
		{0, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d))
	}
}
