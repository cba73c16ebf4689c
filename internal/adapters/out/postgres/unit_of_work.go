// Package postgres provides the GORM-based implementation of the Unit of Work pattern
// and the schema migration of the freight engine.
//
// Every unit of work runs one READ COMMITTED transaction with a bounded lock wait:
// aggregate roots are locked with SELECT ... FOR UPDATE by the repositories, and a
// lock that cannot be taken within the timeout fails with SQLSTATE 55P03, which the
// repositories report as a transient conflict.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, 2*time.Second)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	c, err := uow.CourseRepository().GetForUpdate(ctx, courseID)
//	// ...
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/courserepo"
	"freight/internal/adapters/out/postgres/expeditionrepo"
	"freight/internal/adapters/out/postgres/offerrepo"
	"freight/internal/adapters/out/postgres/partyrepo"
	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/adapters/out/postgres/reviewrepo"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates GORM-based Unit of Work instances.
// Each Create call returns a new, isolated UnitOfWork for a single business transaction.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormUnitOfWorkFactory creates a factory. A zero lockTimeout leaves the server default.
func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, lockTimeout: f.lockTimeout}
}

// GormUnitOfWork implements the Unit of Work pattern on a GORM transaction.
// It is not safe for concurrent use; create one per command.
type GormUnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	lockTimeout time.Duration
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return pgsql.Translate(tx.Error)
	}

	if uow.lockTimeout > 0 {
		// SET LOCAL takes no bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			tx.Rollback()
			return pgsql.Translate(err)
		}
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgsql.Translate(err)
}

// Rollback aborts the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) PartyRepository() ports.PartyRepository {
	return partyrepo.NewGormPartyRepository(uow.conn())
}

func (uow *GormUnitOfWork) ExpeditionRepository() ports.ExpeditionRepository {
	return expeditionrepo.NewGormExpeditionRepository(uow.conn())
}

func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return offerrepo.NewGormOfferRepository(uow.conn())
}

func (uow *GormUnitOfWork) CourseRepository() ports.CourseRepository {
	return courserepo.NewGormCourseRepository(uow.conn())
}

func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
