package queries

import (
	"time"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// expeditionRow mirrors the expeditions table for read models.
type expeditionRow struct {
	ID                 uuid.UUID
	SenderID           uuid.UUID
	OriginAddress      string
	OriginCity         string
	DestinationAddress string
	DestinationCity    string
	Departure          time.Time
	Weight             decimal.Decimal
	Volume             decimal.Decimal
	Budget             decimal.NullDecimal
	Urgency            int
	Fragile            bool
	HeavyVehicle       bool
	DistanceKm         decimal.NullDecimal
	EstimatedPrice     decimal.NullDecimal
	Active             bool
	Status             int
	CreatedAt          time.Time
}

func (r expeditionRow) toDomain() (*expedition.Expedition, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := kernel.UUIDFromBytes(r.SenderID[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.NewPlace(r.OriginAddress, r.OriginCity)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewPlace(r.DestinationAddress, r.DestinationCity)
	if err != nil {
		return nil, err
	}

	return expedition.RestoreExpedition(id, senderID, expedition.Details{
		Origin:       origin,
		Destination:  destination,
		Departure:    r.Departure,
		Weight:       r.Weight,
		Volume:       r.Volume,
		Budget:       decimalPtr(r.Budget),
		Urgency:      expedition.Urgency(r.Urgency),
		Fragile:      r.Fragile,
		HeavyVehicle: r.HeavyVehicle,
		DistanceKm:   decimalPtr(r.DistanceKm),
	}, decimalPtr(r.EstimatedPrice), r.Active, expedition.Status(r.Status), r.CreatedAt)
}

// courseRow is a course joined with the sums its ledger is derived from.
type courseRow struct {
	ID                 uuid.UUID
	CarrierID          uuid.UUID
	OriginAddress      string
	OriginCity         string
	DestinationAddress string
	DestinationCity    string
	Stops              pq.StringArray
	Departure          time.Time
	Arrival            *time.Time
	MaxWeight          decimal.Decimal
	MaxVolume          decimal.NullDecimal
	PricePerKg         decimal.Decimal
	VehicleType        string
	Active             bool
	Status             int
	CreatedAt          time.Time

	CommittedWeight decimal.Decimal
	CommittedVolume decimal.Decimal
	Revenue         decimal.Decimal
	ActiveBookings  int
}

// courseLedgerColumns selects a course with its ledger sums. It expects the course
// aliased c and its bookings left-joined as b; callers group by c.id.
const courseLedgerColumns = `c.*,
	COALESCE(SUM(b.weight) FILTER (WHERE b.status <> @cancelled), 0) AS committed_weight,
	COALESCE(SUM(b.volume) FILTER (WHERE b.status <> @cancelled), 0) AS committed_volume,
	COALESCE(SUM(b.total_price) FILTER (WHERE b.status = @delivered), 0) AS revenue,
	COUNT(b.id) FILTER (WHERE b.status <> @cancelled) AS active_bookings`

func (r courseRow) toCandidate() (services.CourseCandidate, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return services.CourseCandidate{}, err
	}
	carrierID, err := kernel.UUIDFromBytes(r.CarrierID[:])
	if err != nil {
		return services.CourseCandidate{}, err
	}
	origin, err := kernel.NewPlace(r.OriginAddress, r.OriginCity)
	if err != nil {
		return services.CourseCandidate{}, err
	}
	destination, err := kernel.NewPlace(r.DestinationAddress, r.DestinationCity)
	if err != nil {
		return services.CourseCandidate{}, err
	}

	var arrival time.Time
	if r.Arrival != nil {
		arrival = *r.Arrival
	}
	c, err := course.RestoreCourse(id, carrierID, course.Details{
		Origin:      origin,
		Destination: destination,
		Stops:       []string(r.Stops),
		Departure:   r.Departure,
		Arrival:     arrival,
		MaxWeight:   r.MaxWeight,
		MaxVolume:   decimalPtr(r.MaxVolume),
		PricePerKg:  r.PricePerKg,
		VehicleType: r.VehicleType,
	}, r.Active, course.Status(r.Status), r.CreatedAt)
	if err != nil {
		return services.CourseCandidate{}, err
	}

	return services.CourseCandidate{
		Course: c,
		Ledger: services.NewLedgerSnapshot(c.MaxWeight(), c.MaxVolume(),
			r.CommittedWeight, r.CommittedVolume, r.Revenue, r.ActiveBookings),
	}, nil
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
