package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetPartyRatingQueryHandler struct {
	db *gorm.DB
}

func NewGetPartyRatingQueryHandler(db *gorm.DB) GetPartyRatingQueryHandler {
	return GetPartyRatingQueryHandler{db: db}
}

func (h GetPartyRatingQueryHandler) Handle(
	ctx context.Context,
	query GetPartyRatingQuery,
) (GetPartyRatingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartyRatingQueryResponse{}, err
	}

	var resp GetPartyRatingQueryResponse
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		resp, err = h.load(tx, query.PartyID())
		return err
	})
	return resp, err
}

func (h GetPartyRatingQueryHandler) load(tx *gorm.DB, partyID kernel.UUID) (GetPartyRatingQueryResponse, error) {
	var party struct {
		Name          string
		Role          int
		AverageRating decimal.Decimal
		ReviewCount   int
	}
	result := tx.Raw(`
		SELECT name, role, average_rating, review_count
		FROM parties
		WHERE id = ?
	`, partyID.Bytes()).Scan(&party)
	if result.Error != nil {
		return GetPartyRatingQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetPartyRatingQueryResponse{}, errs.NewObjectNotFoundError("party", partyID)
	}

	resp := GetPartyRatingQueryResponse{
		PartyID:       partyID,
		Name:          party.Name,
		Role:          kernel.Role(party.Role),
		AverageRating: party.AverageRating,
		ReviewCount:   party.ReviewCount,
		Recent:        make([]ReviewView, 0),
	}

	rows, err := tx.Raw(`
		SELECT id, reviewer_id, rating, comment, created_at
		FROM reviews
		WHERE reviewed_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, partyID.Bytes(), DefaultRecentReviews).Rows()
	if err != nil {
		return GetPartyRatingQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, reviewerID uuid.UUID
		var view ReviewView
		var createdAt time.Time
		if err = rows.Scan(&id, &reviewerID, &view.Rating, &view.Comment, &createdAt); err != nil {
			return GetPartyRatingQueryResponse{}, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetPartyRatingQueryResponse{}, err
		}
		if view.ReviewerID, err = kernel.UUIDFromBytes(reviewerID[:]); err != nil {
			return GetPartyRatingQueryResponse{}, err
		}
		view.CreatedAt = createdAt
		resp.Recent = append(resp.Recent, view)
	}
	if err = rows.Err(); err != nil {
		return GetPartyRatingQueryResponse{}, err
	}

	return resp, nil
}
