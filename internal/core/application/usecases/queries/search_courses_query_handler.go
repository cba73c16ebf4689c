package queries

import (
	"context"
	"strings"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

// SearchCoursesQueryHandler lists available courses for senders. The capacity left on
// each course is derived from its bookings in the same snapshot as the course row, and
// the room floors, ordering and paging are applied by the database.
type SearchCoursesQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSearchCoursesQueryHandler(db *gorm.DB, now func() time.Time) SearchCoursesQueryHandler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return SearchCoursesQueryHandler{db: db, now: now}
}

func (h SearchCoursesQueryHandler) Handle(
	ctx context.Context,
	query SearchCoursesQuery,
) (SearchCoursesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SearchCoursesQueryResponse{}, err
	}

	criteria := query.Criteria()
	now := h.now()

	var (
		page  []services.CourseCandidate
		total int
	)
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		page, total, err = h.load(tx, now, criteria)
		return err
	})
	if err != nil {
		return SearchCoursesQueryResponse{}, err
	}

	items := make([]CourseView, 0, len(page))
	for _, c := range page {
		items = append(items, newCourseView(c))
	}
	return SearchCoursesQueryResponse{Items: items, Total: total}, nil
}

func (h SearchCoursesQueryHandler) load(
	tx *gorm.DB,
	now time.Time,
	criteria services.CourseCriteria,
) ([]services.CourseCandidate, int, error) {
	from, to := services.DepartureWindow(now, criteria.Day)
	args := map[string]any{
		"available": int(course.Available),
		"cancelled": int(booking.Cancelled),
		"delivered": int(booking.Delivered),
		"from":      from,
	}
	where := []string{"c.status = @available", "c.active = true", "c.departure >= @from"}
	var having []string

	if !to.IsZero() {
		where = append(where, "c.departure < @to")
		args["to"] = to
	}
	if criteria.Origin != "" {
		where = append(where, "(c.origin_city ILIKE @origin OR c.origin_address ILIKE @origin)")
		args["origin"] = likePattern(criteria.Origin)
	}
	if criteria.Destination != "" {
		where = append(where, `(c.destination_city ILIKE @destination OR c.destination_address ILIKE @destination
			OR EXISTS (SELECT 1 FROM unnest(c.stops) AS stop WHERE stop ILIKE @destination))`)
		args["destination"] = likePattern(criteria.Destination)
	}
	if criteria.Weight != nil {
		having = append(having, `GREATEST(c.max_weight -
			COALESCE(SUM(b.weight) FILTER (WHERE b.status <> @cancelled), 0), 0) >= @weight`)
		args["weight"] = *criteria.Weight
		if criteria.Budget != nil && criteria.Weight.IsPositive() {
			where = append(where, "c.price_per_kg <= @max_price_per_kg")
			args["max_price_per_kg"] = criteria.Budget.Div(*criteria.Weight)
		}
	}
	if criteria.Volume != nil {
		having = append(having, `(c.max_volume IS NULL OR GREATEST(c.max_volume -
			COALESCE(SUM(b.volume) FILTER (WHERE b.status <> @cancelled), 0), 0) >= @volume)`)
		args["volume"] = *criteria.Volume
	}

	sql := "SELECT " + courseLedgerColumns + `
		FROM courses AS c
		LEFT JOIN bookings AS b ON b.course_id = c.id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY c.id`
	if len(having) > 0 {
		sql += " HAVING " + strings.Join(having, " AND ")
	}

	var matched int64
	if err := tx.Raw("SELECT COUNT(*) FROM ("+sql+") AS m", args).Scan(&matched).Error; err != nil {
		return nil, 0, err
	}

	browse := criteria.IsBrowse()
	total := services.CapTotal(int(matched), browse)
	offset, limit := criteria.Page.Slice(browse)
	if limit == 0 || offset >= total {
		return []services.CourseCandidate{}, total, nil
	}
	args["offset"] = offset
	args["limit"] = limit

	var rows []courseRow
	err := tx.Raw(sql+" ORDER BY c.departure ASC, c.price_per_kg ASC, c.id ASC LIMIT @limit OFFSET @offset", args).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]services.CourseCandidate, 0, len(rows))
	for _, r := range rows {
		c, err := r.toCandidate()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, nil
}
