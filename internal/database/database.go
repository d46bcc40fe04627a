package database

import (
	"fmt"
	"log"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store and runs migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database (%s) connected and migrated successfully", cfg.DBDriver)
	return db, nil
}

// SQLiteDSN enables foreign keys so show references are enforced like on postgres.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the store is reachable.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func SeedData(db *gorm.DB) error {
	// Check if data already exists
	var count int64
	if err := db.Model(&models.Venue{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count venues: %w", err)
	}
	if count > 0 {
		log.Println("Data already seeded, skipping...")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Create venues
		venues := []models.Venue{
			{
				Name: "The Musical Hop", City: "San Francisco", State: "CA",
				Address: "1015 Folsom Street", Phone: "123-123-1234",
				ImageLink:    "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
				FacebookLink: "https://www.facebook.com/TheMusicalHop",
				Genres:       models.Genres{"Jazz", "Reggae", "Swing", "Classical", "Folk"},
			},
			{
				Name: "The Dueling Pianos Bar", City: "New York", State: "NY",
				Address: "335 Delancey Street", Phone: "914-003-1132",
				ImageLink:    "https://images.unsplash.com/photo-1497032205916-ac775f0649ae",
				FacebookLink: "https://www.facebook.com/theduelingpianos",
				Genres:       models.Genres{"Classical", "R&B", "Hip-Hop"},
			},
			{
				Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA",
				Address: "34 Whiskey Moore Ave", Phone: "415-000-1234",
				ImageLink:    "https://images.unsplash.com/photo-1485686531765-ba63b07845a7",
				FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
				Genres:       models.Genres{"Rock n Roll", "Jazz", "Classical", "Folk"},
			},
		}
		if err := tx.Create(&venues).Error; err != nil {
			return fmt.Errorf("failed to create venues: %w", err)
		}

		// Create artists
		artists := []models.Artist{
			{
				Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
				ImageLink:    "https://images.unsplash.com/photo-1549213783-8284d0336c4f",
				FacebookLink: "https://www.facebook.com/GunsNPetals",
				Genres:       models.Genres{"Rock n Roll"},
			},
			{
				Name: "Matt Quevedo", City: "New York", State: "NY", Phone: "300-400-5000",
				ImageLink:    "https://images.unsplash.com/photo-1495223153807-b916f75de8c5",
				FacebookLink: "https://www.facebook.com/mattquevedo923251523",
				Genres:       models.Genres{"Jazz"},
			},
			{
				Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Phone: "432-325-5432",
				ImageLink: "https://images.unsplash.com/photo-1558369981-f9ca78462e61",
				Genres:    models.Genres{"Jazz", "Classical"},
			},
		}
		if err := tx.Create(&artists).Error; err != nil {
			return fmt.Errorf("failed to create artists: %w", err)
		}

		// Create shows
		shows := []models.Show{
			{VenueID: venues[0].ID, ArtistID: artists[0].ID, StartTime: parseDate("2019-05-21T21:30:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[1].ID, StartTime: parseDate("2019-06-15T23:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-01T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-08T20:00:00Z")},
			{VenueID: venues[2].ID, ArtistID: artists[2].ID, StartTime: parseDate("2035-04-15T20:00:00Z")},
		}
		if err := tx.Create(&shows).Error; err != nil {
			return fmt.Errorf("failed to create shows: %w", err)
		}

		log.Println("Sample data seeded successfully")
		return nil
	})
}

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse(time.RFC3339, dateStr)
	return t
}
