package models

import (
	"time"

	"gorm.io/gorm"
)

// Genres is stored as one JSON text column; it is a flat tag list.
type Genres []string

type Venue struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	City         string `gorm:"size:120;index:idx_venue_area,priority:2"`
	State        string `gorm:"size:120;index:idx_venue_area,priority:1"`
	Address      string `gorm:"size:120"`
	Phone        string `gorm:"size:120"`
	ImageLink    string `gorm:"size:500"`
	FacebookLink string `gorm:"size:120"`
	Genres       Genres `gorm:"type:text;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	Shows []Show `gorm:"foreignKey:VenueID"`
}

type Artist struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	City         string `gorm:"size:120"`
	State        string `gorm:"size:120"`
	Phone        string `gorm:"size:120"`
	ImageLink    string `gorm:"size:500"`
	FacebookLink string `gorm:"size:120"`
	Genres       Genres `gorm:"type:text;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	Shows []Show `gorm:"foreignKey:ArtistID"`
}

// Show links one Artist to one Venue at one time.
type Show struct {
	ID        uint      `gorm:"primaryKey"`
	ArtistID  uint      `gorm:"not null;index"`
	VenueID   uint      `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	// Relationships
	Artist Artist `gorm:"foreignKey:ArtistID"`
	Venue  Venue  `gorm:"foreignKey:VenueID"`
}

// Area is one distinct (state, city) pair of the venue listing.
type Area struct {
	State  string
	City   string
	Venues []Venue `gorm:"-"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Venue{},
		&Artist{},
		&Show{},
	)
}

// SplitShows partitions shows against a single clock reading: a show is past
// iff it started strictly before now. Input order is kept in both halves.
func SplitShows(shows []Show, now time.Time) (past, upcoming []Show) {
	for _, s := range shows {
		if s.StartTime.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}

// CountUpcoming counts the shows starting at or after now.
func CountUpcoming(shows []Show, now time.Time) int {
	_, upcoming := SplitShows(shows, now)
	return len(upcoming)
}
