// Package dberr classifies datastore errors independent of the gorm engine in use.
package dberr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUndefinedTable   = "42P01"
	pgUniqueViolation  = "23505"
	mysqlNoSuchTable   = 1146
	mysqlDuplicateKey  = 1062
	sqliteNoSuchTable  = "no such table"
	sqliteUniqueFailed = "UNIQUE constraint failed"
)

// IsMissingTable reports whether err was caused by a table that does not exist.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoSuchTable
	}

	return strings.Contains(err.Error(), sqliteNoSuchTable)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateKey
	}

	return strings.Contains(err.Error(), sqliteUniqueFailed)
}
