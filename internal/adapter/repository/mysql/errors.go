package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Parthsuii/fintech/internal/domain/investment"
)

// MySQL error 1205: lock wait timeout exceeded.
const erLockWaitTimeout = 1205

// translate maps driver-level failures to domain errors; everything else
// passes through (including gorm.ErrRecordNotFound, which usecases match).
func translate(err error) error {
	var me *driver.MySQLError
	if errors.As(err, &me) && me.Number == erLockWaitTimeout {
		return investment.ErrLockTimeout
	}
	return err
}

// forUpdate applies a SELECT ... FOR UPDATE clause on dialects that support
// it. The sqlite test database has no row locks; its writes serialize on the
// database lock instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
