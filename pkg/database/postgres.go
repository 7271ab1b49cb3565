package database

import (
	"log"

	"github.com/futsala/futsala-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Map driver unique violations (23505) to gorm.ErrDuplicatedKey so
		// services can errors.Is on them.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.Venue{},
		&models.Court{},
		&models.TimeSlot{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	ApplyBookingConstraints(db)

	return db
}

// ApplyBookingConstraints installs the exclusion constraint that keeps active
// bookings for a court and date pairwise non-overlapping at the storage layer.
// The application-level conflict check runs first, but two requests racing
// past it in separate processes would otherwise both commit; the constraint
// rejects the loser and the service maps the violation to a slot conflict.
func ApplyBookingConstraints(db *gorm.DB) {
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)

	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				court_id WITH =,
				booking_date WITH =,
				int4range(start_min, end_min) WITH &&
			) WHERE (status NOT IN ('CANCELLED', 'REJECTED'));
		EXCEPTION
			WHEN duplicate_object THEN NULL;
			WHEN duplicate_table THEN NULL;
		END $$
	`)
}
