// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error codes themselves.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrDuplicateName is returned when an insert violates a name uniqueness
// constraint (airplane type or country names). Handlers translate this
// into HTTP 409.
var ErrDuplicateName = errors.New("name already exists")

// ErrSeatTaken is returned when a ticket insert collides with the
// (flight, row, seat) unique key, i.e. another order already holds that
// physical seat. Within an order transaction it aborts the whole order.
var ErrSeatTaken = errors.New("seat already taken for this flight")

// ErrMissingReference is returned when an insert references a foreign key
// that does not exist (unknown airplane type, airport, route and so on).
var ErrMissingReference = errors.New("referenced record does not exist")

// MySQL server error numbers the repositories dispatch on.
const (
    mysqlErrDuplicateEntry  = 1062
    mysqlErrNoReferencedRow = 1452
)

// isDuplicateEntry reports whether err is a MySQL duplicate-key violation.
func isDuplicateEntry(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// isMissingReference reports whether err is a MySQL foreign-key violation on
// insert or update.
func isMissingReference(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlErrNoReferencedRow
}
