package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

// SearchExpeditionsQueryHandler lists open expeditions for carriers, most urgent first.
//
// Filtering, ordering and paging all run in SQL; only the requested page is loaded.
type SearchExpeditionsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSearchExpeditionsQueryHandler creates the handler. A nil clock means time.Now in UTC.
func NewSearchExpeditionsQueryHandler(db *gorm.DB, now func() time.Time) SearchExpeditionsQueryHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return SearchExpeditionsQueryHandler{db: db, now: now}
}

func (h SearchExpeditionsQueryHandler) Handle(
	ctx context.Context,
	query SearchExpeditionsQuery,
) (SearchExpeditionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchExpeditionsQueryResponse{}, err
	}

	criteria := query.Criteria()
	now := h.now()

	var (
		page  []*expedition.Expedition
		total int
	)
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		page, total, err = h.load(tx, now, criteria)
		return err
	})
	if err != nil {
		return SearchExpeditionsQueryResponse{}, err
	}

	items := make([]ExpeditionView, 0, len(page))
	for _, e := range page {
		items = append(items, newExpeditionView(e))
	}
	return SearchExpeditionsQueryResponse{Items: items, Total: total}, nil
}

func (h SearchExpeditionsQueryHandler) load(
	tx *gorm.DB,
	now time.Time,
	criteria services.ExpeditionCriteria,
) ([]*expedition.Expedition, int, error) {
	from, to := services.DepartureWindow(now, criteria.Day)

	q := tx.Table("expeditions").
		Where("status IN ?", []int{int(expedition.Published), int(expedition.OffersReceived)}).
		Where("active = true").
		Where("departure >= ?", from)
	if !to.IsZero() {
		q = q.Where("departure < ?", to)
	}
	if criteria.Origin != "" {
		p := likePattern(criteria.Origin)
		q = q.Where("(origin_city ILIKE ? OR origin_address ILIKE ?)", p, p)
	}
	if criteria.Destination != "" {
		p := likePattern(criteria.Destination)
		q = q.Where("(destination_city ILIKE ? OR destination_address ILIKE ?)", p, p)
	}
	if criteria.MaxWeight != nil {
		q = q.Where("weight <= ?", *criteria.MaxWeight)
	}
	if criteria.MaxVolume != nil {
		q = q.Where("volume <= ?", *criteria.MaxVolume)
	}
	if criteria.Budget != nil {
		q = q.Where("(budget IS NULL OR budget <= ?)", *criteria.Budget)
	}
	q = q.Session(&gorm.Session{})

	var matched int64
	if err := q.Count(&matched).Error; err != nil {
		return nil, 0, err
	}

	browse := criteria.IsBrowse()
	total := services.CapTotal(int(matched), browse)
	offset, limit := criteria.Page.Slice(browse)
	if limit == 0 || offset >= total {
		return []*expedition.Expedition{}, total, nil
	}

	var rows []expeditionRow
	err := q.Order("urgency DESC, departure ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*expedition.Expedition, 0, len(rows))
	for _, r := range rows {
		e, err := r.toDomain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, nil
}
