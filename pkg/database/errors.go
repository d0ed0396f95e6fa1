package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// WrapError classifies a driver failure as *model.QueryError. nil stays nil and an
// already classified error is returned as is.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	var qe *model.QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &model.QueryError{
		Kind:    Classify(err),
		Message: err.Error(),
		Err:     err,
	}
}

// Classify maps a driver error onto one of the model.QueryErr* kinds.
func Classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return model.QueryErrTimeout
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return model.QueryErrConnection
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return classifyMySQL(myErr.Number)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgres(pqErr.Code)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return model.QueryErrTimeout
		}
		return model.QueryErrConnection
	}

	return model.QueryErrUnknown
}

func classifyMySQL(number uint16) string {
	switch number {
	case 1040, 1044, 1045, 1049, 1129, 1130:
		return model.QueryErrConnection
	case 1064, 1149:
		return model.QueryErrSyntax
	case 1046, 1054, 1146, 1305:
		return model.QueryErrUndefined
	case 1048, 1062, 1216, 1217, 1364, 1451, 1452, 3819:
		return model.QueryErrConstraint
	case 1205, 1213, 3024:
		return model.QueryErrTimeout
	}
	return model.QueryErrUnknown
}

func classifyPostgres(code pq.ErrorCode) string {
	switch {
	case code == "42601":
		return model.QueryErrSyntax
	case code == "57014":
		return model.QueryErrTimeout
	case code.Class() == "08" || code.Class() == "28" || code == "3D000":
		return model.QueryErrConnection
	case code.Class() == "23":
		return model.QueryErrConstraint
	case code.Class() == "42":
		return model.QueryErrUndefined
	}
	return model.QueryErrUnknown
}

func classifySQLite(err sqlite3.Error) string {
	switch err.Code {
	case sqlite3.ErrConstraint:
		return model.QueryErrConstraint
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrInterrupt:
		return model.QueryErrTimeout
	case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrPerm:
		return model.QueryErrConnection
	case sqlite3.ErrError:
		msg := err.Error()
		switch {
		case strings.Contains(msg, "syntax error"):
			return model.QueryErrSyntax
		case strings.Contains(msg, "no such"):
			return model.QueryErrUndefined
		}
	}
	return model.QueryErrUnknown
}
