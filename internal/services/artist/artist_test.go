package artist

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/testutil"
	"github.com/JonasLeetTheWay/fyyur-go/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var clock = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *gorm.DB, *testutil.Flashes) {
	t.Helper()
	db := testutil.NewDB(t)
	flashes := &testutil.Flashes{}
	s := NewService(db, views.NewResponder(flashes))
	s.now = func() time.Time { return clock }
	return s, db, flashes
}

func validInput() forms.ArtistInput {
	return forms.ArtistInput{
		Name:   "Matt Quevedo",
		City:   "New York",
		State:  "NY",
		Phone:  "300-400-5000",
		Genres: []string{"Jazz"},
	}
}

func TestListOrderedByID(t *testing.T) {
	s, db, _ := setup(t)
	require.NoError(t, database.SeedData(db))

	artists, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 3)
	assert.Equal(t, "Guns N Petals", artists[0].Name)
	assert.Equal(t, "The Wild Sax Band", artists[2].Name)

	// the seeded band has three shows in 2035
	summaries := views.ArtistSummaries(artists, clock)
	assert.Equal(t, 3, summaries[2].NumUpcomingShows)
	assert.Equal(t, 0, summaries[0].NumUpcomingShows)
}

func TestSearch(t *testing.T) {
	s, db, _ := setup(t)
	require.NoError(t, database.SeedData(db))
	ctx := context.Background()

	found, err := s.Search(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = s.Search(ctx, "band")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "The Wild Sax Band", found[0].Name)

	found, err = s.Search(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindSplitsShows(t *testing.T) {
	s, db, _ := setup(t)
	a := testutil.Artist(t, db, "Guns N Petals")
	v := testutil.Venue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.Show(t, db, a.ID, v.ID, clock.Add(-time.Minute))
	testutil.Show(t, db, a.ID, v.ID, clock)

	artist, err := s.Find(context.Background(), a.ID)
	require.NoError(t, err)

	d := views.NewArtistDetail(artist, clock)
	assert.Equal(t, 1, d.NumPastShows)
	assert.Equal(t, 1, d.NumUpcomingShows)
	assert.Equal(t, "The Musical Hop", d.PastShows[0].Name)

	_, err = s.Find(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateAndUpdate(t *testing.T) {
	s, db, _ := setup(t)
	ctx := context.Background()

	created, err := s.Create(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Phone = ""
	in.Genres = []string{"Jazz", "Blues"}
	_, err = s.Update(ctx, created.ID, in)
	require.NoError(t, err)

	var got models.Artist
	require.NoError(t, db.First(&got, created.ID).Error)
	assert.Empty(t, got.Phone)
	assert.Equal(t, models.Genres{"Jazz", "Blues"}, got.Genres)

	bad := validInput()
	bad.Genres = nil
	_, err = s.Update(ctx, created.ID, bad)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestUpdateMissing(t *testing.T) {
	s, db, _ := setup(t)
	r := testutil.Engine(t)
	s.SetupRoutes(r)

	_, err := s.Update(context.Background(), 42, validInput())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Update(context.Background(), 42, forms.ArtistInput{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	w := testutil.PostForm(r, "/artists/42/edit", url.Values{"name": {""}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.Artist{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteCascadesToShows(t *testing.T) {
	s, db, _ := setup(t)
	a := testutil.Artist(t, db, "Guns N Petals")
	v := testutil.Venue(t, db, "The Musical Hop", "San Francisco", "CA")
	testutil.Show(t, db, a.ID, v.ID, clock)

	require.NoError(t, s.Delete(context.Background(), a.ID))

	var n int64
	require.NoError(t, db.Model(&models.Show{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Venue{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	assert.ErrorIs(t, s.Delete(context.Background(), a.ID), apperr.ErrNotFound)
}

func TestArtistRoutes(t *testing.T) {
	s, db, flashes := setup(t)
	r := testutil.Engine(t)
	s.SetupRoutes(r)

	w := testutil.PostForm(r, "/artists/create", url.Values{
		"name":   {"Matt Quevedo"},
		"city":   {"New York"},
		"state":  {"NY"},
		"genres": {"Jazz"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"Artist Matt Quevedo was successfully listed!"}, flashes.Pending)

	var artist models.Artist
	require.NoError(t, db.First(&artist).Error)
	assert.Equal(t, artistPath(artist.ID), w.Header().Get("Location"))

	w = testutil.Do(r, http.MethodGet, "/artists")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Matt Quevedo")

	w = testutil.PostForm(r, "/artists/search", url.Values{"search_term": {"matt"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Matt Quevedo")

	w = testutil.PostForm(r, "/artists/create", url.Values{"name": {"No Genres"}, "city": {"x"}, "state": {"NY"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Equal(t, http.StatusNotFound, testutil.Do(r, http.MethodGet, "/artists/0").Code)

	w = testutil.Do(r, http.MethodDelete, artistPath(artist.ID))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/artists", w.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, testutil.Do(r, http.MethodGet, artistPath(artist.ID)).Code)
}
