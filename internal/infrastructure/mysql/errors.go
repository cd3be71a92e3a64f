package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	errDuplicateEntry  = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errLockWaitTimeout = 1205
	errDeadlockFound   = 1213
)

func errorNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

// IsDuplicateEntry reports a unique key violation.
func IsDuplicateEntry(err error) bool {
	return errorNumber(err) == errDuplicateEntry
}

// IsRowReferenced reports a delete or update blocked by a foreign key.
func IsRowReferenced(err error) bool {
	return errorNumber(err) == errRowIsReferenced
}

// IsMissingReference reports an insert or update pointing at a missing parent row.
func IsMissingReference(err error) bool {
	return errorNumber(err) == errNoReferencedRow
}

func IsDeadlock(err error) bool {
	n := errorNumber(err)
	return n == errDeadlockFound || n == errLockWaitTimeout
}
