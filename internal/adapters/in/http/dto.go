package http

import (
	"strings"
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Place struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city"`
}

func (p Place) toDomain() (kernel.Place, error) {
	return kernel.NewPlace(p.Address, p.City)
}

func newPlace(p kernel.Place) Place {
	return Place{Address: p.Address(), City: p.City()}
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type NewParty struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type ExpeditionDetails struct {
	Origin       Place            `json:"origin"`
	Destination  Place            `json:"destination"`
	Departure    time.Time        `json:"departure"`
	Weight       decimal.Decimal  `json:"weight"`
	Volume       decimal.Decimal  `json:"volume"`
	Budget       *decimal.Decimal `json:"budget,omitempty"`
	Urgency      string           `json:"urgency,omitempty"`
	Fragile      bool             `json:"fragile,omitempty"`
	HeavyVehicle bool             `json:"heavyVehicle,omitempty"`
	DistanceKm   *decimal.Decimal `json:"distanceKm,omitempty"`
}

func (d ExpeditionDetails) toDomain() (expedition.Details, error) {
	origin, err := d.Origin.toDomain()
	if err != nil {
		return expedition.Details{}, err
	}
	destination, err := d.Destination.toDomain()
	if err != nil {
		return expedition.Details{}, err
	}
	urgency, err := expedition.ParseUrgency(d.Urgency)
	if err != nil {
		return expedition.Details{}, err
	}
	return expedition.Details{
		Origin:       origin,
		Destination:  destination,
		Departure:    d.Departure,
		Weight:       d.Weight,
		Volume:       d.Volume,
		Budget:       d.Budget,
		Urgency:      urgency,
		Fragile:      d.Fragile,
		HeavyVehicle: d.HeavyVehicle,
		DistanceKm:   d.DistanceKm,
	}, nil
}

type NewExpedition struct {
	ExpeditionDetails
	Draft bool `json:"draft,omitempty"`
}

type CourseDetails struct {
	Origin      Place            `json:"origin"`
	Destination Place            `json:"destination"`
	Stops       []string         `json:"stops,omitempty"`
	Departure   time.Time        `json:"departure"`
	Arrival     *time.Time       `json:"arrival,omitempty"`
	MaxWeight   decimal.Decimal  `json:"maxWeight"`
	MaxVolume   *decimal.Decimal `json:"maxVolume,omitempty"`
	PricePerKg  decimal.Decimal  `json:"pricePerKg"`
	VehicleType string           `json:"vehicleType,omitempty"`
}

func (d CourseDetails) toDomain() (course.Details, error) {
	origin, err := d.Origin.toDomain()
	if err != nil {
		return course.Details{}, err
	}
	destination, err := d.Destination.toDomain()
	if err != nil {
		return course.Details{}, err
	}
	details := course.Details{
		Origin:      origin,
		Destination: destination,
		Stops:       d.Stops,
		Departure:   d.Departure,
		MaxWeight:   d.MaxWeight,
		MaxVolume:   d.MaxVolume,
		PricePerKg:  d.PricePerKg,
		VehicleType: d.VehicleType,
	}
	if d.Arrival != nil {
		details.Arrival = *d.Arrival
	}
	return details, nil
}

type NewOffer struct {
	Price   decimal.Decimal `json:"price"`
	Message string          `json:"message,omitempty"`
}

type NewBooking struct {
	Weight   decimal.Decimal  `json:"weight"`
	Volume   *decimal.Decimal `json:"volume,omitempty"`
	Packages int              `json:"packages"`
}

type NewReview struct {
	ReviewedID uuid.UUID `json:"reviewedId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
}

type Expedition struct {
	ID             uuid.UUID        `json:"id"`
	SenderID       uuid.UUID        `json:"senderId"`
	Origin         Place            `json:"origin"`
	Destination    Place            `json:"destination"`
	Departure      time.Time        `json:"departure"`
	Weight         decimal.Decimal  `json:"weight"`
	Volume         decimal.Decimal  `json:"volume"`
	Budget         *decimal.Decimal `json:"budget,omitempty"`
	EstimatedPrice *decimal.Decimal `json:"estimatedPrice,omitempty"`
	Urgency        string           `json:"urgency"`
	Fragile        bool             `json:"fragile"`
	HeavyVehicle   bool             `json:"heavyVehicle"`
	Status         string           `json:"status"`
}

func newExpedition(v queries.ExpeditionView) Expedition {
	return Expedition{
		ID:             v.ID.Bytes(),
		SenderID:       v.SenderID.Bytes(),
		Origin:         newPlace(v.Origin),
		Destination:    newPlace(v.Destination),
		Departure:      v.Departure,
		Weight:         v.Weight,
		Volume:         v.Volume,
		Budget:         v.Budget,
		EstimatedPrice: v.EstimatedPrice,
		Urgency:        v.Urgency.String(),
		Fragile:        v.Fragile,
		HeavyVehicle:   v.HeavyVehicle,
		Status:         v.Status.String(),
	}
}

type ExpeditionPage struct {
	Items []Expedition `json:"items"`
	Total int          `json:"total"`
}

func newExpeditionPage(res queries.SearchExpeditionsQueryResponse) ExpeditionPage {
	items := make([]Expedition, len(res.Items))
	for i, v := range res.Items {
		items[i] = newExpedition(v)
	}
	return ExpeditionPage{Items: items, Total: res.Total}
}

type Course struct {
	ID               uuid.UUID        `json:"id"`
	CarrierID        uuid.UUID        `json:"carrierId"`
	Origin           Place            `json:"origin"`
	Destination      Place            `json:"destination"`
	Stops            []string         `json:"stops"`
	Departure        time.Time        `json:"departure"`
	Arrival          *time.Time       `json:"arrival,omitempty"`
	MaxWeight        decimal.Decimal  `json:"maxWeight"`
	AvailableWeight  decimal.Decimal  `json:"availableWeight"`
	MaxVolume        *decimal.Decimal `json:"maxVolume,omitempty"`
	AvailableVolume  *decimal.Decimal `json:"availableVolume,omitempty"`
	PricePerKg       decimal.Decimal  `json:"pricePerKg"`
	VehicleType      string           `json:"vehicleType,omitempty"`
	OccupancyPercent int64            `json:"occupancyPercent"`
	Status           string           `json:"status"`
}

func newCourse(v queries.CourseView) Course {
	c := Course{
		ID:               v.ID.Bytes(),
		CarrierID:        v.CarrierID.Bytes(),
		Origin:           newPlace(v.Origin),
		Destination:      newPlace(v.Destination),
		Stops:            v.Stops,
		Departure:        v.Departure,
		MaxWeight:        v.MaxWeight,
		AvailableWeight:  v.AvailableWeight,
		MaxVolume:        v.MaxVolume,
		AvailableVolume:  v.AvailableVolume,
		PricePerKg:       v.PricePerKg,
		VehicleType:      v.VehicleType,
		OccupancyPercent: v.OccupancyPercent,
		Status:           v.Status.String(),
	}
	if c.Stops == nil {
		c.Stops = []string{}
	}
	if !v.Arrival.IsZero() {
		arrival := v.Arrival
		c.Arrival = &arrival
	}
	return c
}

type CoursePage struct {
	Items []Course `json:"items"`
	Total int      `json:"total"`
}

func newCoursePage(res queries.SearchCoursesQueryResponse) CoursePage {
	items := make([]Course, len(res.Items))
	for i, v := range res.Items {
		items[i] = newCourse(v)
	}
	return CoursePage{Items: items, Total: res.Total}
}

type SearchResult struct {
	Expeditions *ExpeditionPage `json:"expeditions,omitempty"`
	Courses     *CoursePage     `json:"courses,omitempty"`
}

type Ledger struct {
	CourseID         uuid.UUID        `json:"courseId"`
	Status           string           `json:"status"`
	MaxWeight        decimal.Decimal  `json:"maxWeight"`
	CommittedWeight  decimal.Decimal  `json:"committedWeight"`
	AvailableWeight  decimal.Decimal  `json:"availableWeight"`
	MaxVolume        *decimal.Decimal `json:"maxVolume,omitempty"`
	CommittedVolume  decimal.Decimal  `json:"committedVolume"`
	AvailableVolume  *decimal.Decimal `json:"availableVolume,omitempty"`
	OccupancyPercent int64            `json:"occupancyPercent"`
	RealizedRevenue  decimal.Decimal  `json:"realizedRevenue"`
	ActiveBookings   int              `json:"activeBookings"`
}

func newLedger(res queries.GetCourseLedgerQueryResponse) Ledger {
	l := res.Ledger
	return Ledger{
		CourseID:         res.CourseID.Bytes(),
		Status:           res.Status.String(),
		MaxWeight:        l.MaxWeight,
		CommittedWeight:  l.CommittedWeight,
		AvailableWeight:  l.AvailableWeight,
		MaxVolume:        l.MaxVolume,
		CommittedVolume:  l.CommittedVolume,
		AvailableVolume:  l.AvailableVolume,
		OccupancyPercent: res.OccupancyPercent,
		RealizedRevenue:  l.RealizedRevenue,
		ActiveBookings:   l.ActiveBookings,
	}
}

type Review struct {
	ID         uuid.UUID `json:"id"`
	ReviewerID uuid.UUID `json:"reviewerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Rating struct {
	PartyID       uuid.UUID       `json:"partyId"`
	Name          string          `json:"name"`
	Role          string          `json:"role"`
	AverageRating decimal.Decimal `json:"averageRating"`
	ReviewCount   int             `json:"reviewCount"`
	Recent        []Review        `json:"recent"`
}

func newRating(res queries.GetPartyRatingQueryResponse) Rating {
	recent := make([]Review, len(res.Recent))
	for i, r := range res.Recent {
		recent[i] = Review{
			ID:         r.ID.Bytes(),
			ReviewerID: r.ReviewerID.Bytes(),
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
		}
	}
	return Rating{
		PartyID:       res.PartyID.Bytes(),
		Name:          res.Name,
		Role:          strings.ToLower(res.Role.String()),
		AverageRating: res.AverageRating,
		ReviewCount:   res.ReviewCount,
		Recent:        recent,
	}
}
