package postgres

import (
	"fmt"

	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/courserepo"
	"freight/internal/adapters/out/postgres/expeditionrepo"
	"freight/internal/adapters/out/postgres/offerrepo"
	"freight/internal/adapters/out/postgres/partyrepo"
	"freight/internal/adapters/out/postgres/reviewrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&partyrepo.PartyDTO{},
		&expeditionrepo.ExpeditionDTO{},
		&courserepo.CourseDTO{},
		&offerrepo.OfferDTO{},
		&bookingrepo.BookingDTO{},
		&reviewrepo.ReviewDTO{},
	}
}

type foreignKey struct {
	model      any
	table      string
	name       string
	column     string
	references string
	onDelete   string
}

var foreignKeys = []foreignKey{
	{&expeditionrepo.ExpeditionDTO{}, "expeditions", "fk_expeditions_sender", "sender_id", "parties", "CASCADE"},
	{&courserepo.CourseDTO{}, "courses", "fk_courses_carrier", "carrier_id", "parties", "CASCADE"},
	{&offerrepo.OfferDTO{}, "offers", "fk_offers_expedition", "expedition_id", "expeditions", "CASCADE"},
	{&offerrepo.OfferDTO{}, "offers", "fk_offers_carrier", "carrier_id", "parties", "CASCADE"},
	{&bookingrepo.BookingDTO{}, "bookings", "fk_bookings_course", "course_id", "courses", "CASCADE"},
	{&bookingrepo.BookingDTO{}, "bookings", "fk_bookings_client", "client_id", "parties", "CASCADE"},
	{&reviewrepo.ReviewDTO{}, "reviews", "fk_reviews_reviewer", "reviewer_id", "parties", "CASCADE"},
	{&reviewrepo.ReviewDTO{}, "reviews", "fk_reviews_reviewed", "reviewed_id", "parties", "CASCADE"},
}

// Migrate creates or updates the schema, then adds the foreign keys AutoMigrate
// cannot derive from the DTOs, which carry no associations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	m := db.Migrator()
	for _, fk := range foreignKeys {
		if m.HasConstraint(fk.model, fk.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (id) ON DELETE %s",
			fk.table, fk.name, fk.column, fk.references, fk.onDelete)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.name, err)
		}
	}
	return nil
}
