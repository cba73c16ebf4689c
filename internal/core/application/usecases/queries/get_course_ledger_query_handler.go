package queries

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourseLedgerQueryHandler derives a course's ledger from its bookings in one snapshot.
type GetCourseLedgerQueryHandler struct {
	db *gorm.DB
}

func NewGetCourseLedgerQueryHandler(db *gorm.DB) GetCourseLedgerQueryHandler {
	return GetCourseLedgerQueryHandler{db: db}
}

func (h GetCourseLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetCourseLedgerQuery,
) (GetCourseLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourseLedgerQueryResponse{}, err
	}
	actor := query.Actor()
	if actor.IsAnonymous() {
		return GetCourseLedgerQueryResponse{}, errs.NewUnauthorizedError("read course ledger", "caller is anonymous")
	}

	var rows []courseRow
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		return tx.Raw("SELECT "+courseLedgerColumns+`
			FROM courses AS c
			LEFT JOIN bookings AS b ON b.course_id = c.id
			WHERE c.id = @id
			GROUP BY c.id`, map[string]any{
			"id":        query.CourseID().Bytes(),
			"cancelled": int(booking.Cancelled),
			"delivered": int(booking.Delivered),
		}).Scan(&rows).Error
	})
	if err != nil {
		return GetCourseLedgerQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetCourseLedgerQueryResponse{}, errs.NewObjectNotFoundError("course", query.CourseID())
	}

	candidate, err := rows[0].toCandidate()
	if err != nil {
		return GetCourseLedgerQueryResponse{}, err
	}
	if err = actor.RequireOwner("read course ledger", candidate.Course.CarrierID()); err != nil {
		return GetCourseLedgerQueryResponse{}, err
	}

	return GetCourseLedgerQueryResponse{
		CourseID:         candidate.Course.ID(),
		Status:           candidate.Course.Status(),
		Ledger:           candidate.Ledger,
		OccupancyPercent: candidate.Ledger.OccupancyPercent(),
	}, nil
}
