package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzhydenko/airport-api/internal/model"
)

func TestOrderCreateTxPopulatesIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	o := &model.Order{UserID: 7}
	require.NoError(t, repo.CreateTx(context.Background(), tx, o))
	assert.Equal(t, uint64(42), o.ID)
	assert.Equal(t, created, o.CreatedAt)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertTicketTxMapsDuplicateToSeatTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(30), uint32(6), uint64(1), uint64(42)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-30-6' for key 'uq_tickets_seat'"})
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	err = repo.InsertTicketTx(context.Background(), tx, &model.Ticket{
		Row: 30, Seat: 6, FlightID: 1, OrderID: 42,
	})
	assert.ErrorIs(t, err, ErrSeatTaken)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing ticket insert must leave no partial state behind: the order row
// created earlier in the same transaction is rolled back together with any
// tickets already inserted.
func TestOrderTransactionRollsBackOnTicketFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(1), uint32(1), uint64(9), uint64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(uint32(1), uint32(2), uint64(9), uint64(42)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	repo := NewOrderRepo(db)
	o := &model.Order{UserID: 7}
	require.NoError(t, repo.CreateTx(ctx, tx, o))
	require.NoError(t, repo.InsertTicketTx(ctx, tx, &model.Ticket{Row: 1, Seat: 1, FlightID: 9, OrderID: o.ID}))

	err = repo.InsertTicketTx(ctx, tx, &model.Ticket{Row: 1, Seat: 2, FlightID: 9, OrderID: o.ID})
	require.ErrorIs(t, err, ErrSeatTaken)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatGridTxUnknownFlight(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT a.seat_rows, a.seats_in_row").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_rows", "seats_in_row"}))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewFlightRepo(db)
	_, err = repo.SeatGridTx(context.Background(), tx, 99)
	assert.Error(t, err)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
