// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated SQLite store living in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fyyur.db")
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(path)), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// Venue inserts a venue with sane defaults for the fields not under test.
func Venue(t *testing.T, db *gorm.DB, name, city, state string) models.Venue {
	t.Helper()

	v := models.Venue{
		Name:    name,
		City:    city,
		State:   state,
		Address: "1 Main St",
		Phone:   "123-123-1234",
		Genres:  models.Genres{"Jazz"},
	}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("create venue: %v", err)
	}
	return v
}

func Artist(t *testing.T, db *gorm.DB, name string) models.Artist {
	t.Helper()

	a := models.Artist{
		Name:   name,
		City:   "San Francisco",
		State:  "CA",
		Phone:  "326-123-5000",
		Genres: models.Genres{"Rock n Roll"},
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create artist: %v", err)
	}
	return a
}

func Show(t *testing.T, db *gorm.DB, artistID, venueID uint, start time.Time) models.Show {
	t.Helper()

	s := models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start.UTC()}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create show: %v", err)
	}
	return s
}

// Flashes is an in-memory flash.Store shared by every request of a test.
type Flashes struct {
	Pending []string
}

func (f *Flashes) Add(_ *gin.Context, message string) error {
	f.Pending = append(f.Pending, message)
	return nil
}

func (f *Flashes) Pop(_ *gin.Context) ([]string, error) {
	out := f.Pending
	f.Pending = nil
	return out, nil
}

// Engine returns a test-mode gin engine that renders the real templates.
func Engine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	renderer, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	r.HTMLRender = renderer
	return r
}

// PostForm sends an urlencoded form to the engine.
func PostForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func Do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}
