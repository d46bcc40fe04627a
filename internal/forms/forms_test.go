package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVenue() VenueInput {
	return VenueInput{
		Name:         "The Musical Hop",
		City:         "San Francisco",
		State:        "CA",
		Address:      "1015 Folsom Street",
		Phone:        "123-123-1234",
		ImageLink:    "https://images.unsplash.com/photo-1543900694-133f37abaaa5",
		FacebookLink: "https://www.facebook.com/TheMusicalHop",
		Genres:       []string{"Jazz", "Reggae"},
	}
}

func fields(t *testing.T, err error) []string {
	t.Helper()
	verr, ok := apperr.IsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	var names []string
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestVenueInputValid(t *testing.T) {
	in := validVenue()
	in.Name = "  The Musical Hop  "
	in.Genres = []string{" Jazz ", ""}

	require.NoError(t, in.Validate())
	assert.Equal(t, "The Musical Hop", in.Name)
	assert.Equal(t, []string{"Jazz"}, in.Genres)
}

func TestVenueInputOptionalFieldsMayBeBlank(t *testing.T) {
	in := validVenue()
	in.Phone, in.ImageLink, in.FacebookLink = "", "", ""

	assert.NoError(t, in.Validate())
}

func TestVenueInputEmptyName(t *testing.T) {
	in := validVenue()
	in.Name = "   "

	err := in.Validate()
	assert.Equal(t, []string{"name"}, fields(t, err))

	verr, _ := apperr.IsValidation(err)
	assert.Equal(t, "name is a required field", verr.Fields[0].Message)
}

func TestVenueInputReportsFieldsInDeclarationOrder(t *testing.T) {
	in := VenueInput{
		State:        "Narnia",
		Phone:        "5551234",
		FacebookLink: "ftp://example.com",
		Genres:       []string{"Jazz", "Polka", "Yodel"},
	}

	err := in.Validate()
	assert.Equal(t, []string{"name", "city", "state", "address", "phone", "facebook_link", "genres"}, fields(t, err))

	verr, _ := apperr.IsValidation(err)
	msg, _ := verr.Field("phone")
	assert.Equal(t, "phone must look like 123-456-7890", msg)
	msg, _ = verr.Field("state")
	assert.Equal(t, "state must be a two-letter US state code", msg)
	msg, _ = verr.Field("facebook_link")
	assert.Equal(t, "facebook_link must be an http(s) URL", msg)
	msg, _ = verr.Field("genres")
	assert.Equal(t, "genres[1] is not a known genre", msg)
}

func TestVenueInputRequiresAGenre(t *testing.T) {
	in := validVenue()
	in.Genres = []string{"", " "}

	err := in.Validate()
	assert.Equal(t, []string{"genres"}, fields(t, err))
}

func TestArtistInputHasNoAddress(t *testing.T) {
	in := ArtistInput{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}}
	assert.NoError(t, in.Validate())
}

func TestShowInput(t *testing.T) {
	in := ShowInput{ArtistID: "4", VenueID: " 1 ", StartTime: "2019-05-21T21:30"}
	require.NoError(t, in.Validate())

	artistID, venueID, start := in.Values()
	assert.Equal(t, uint(4), artistID)
	assert.Equal(t, uint(1), venueID)
	assert.Equal(t, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC), start)

	bad := ShowInput{ArtistID: "0", VenueID: "x", StartTime: "soon"}
	assert.Equal(t, []string{"artist_id", "venue_id", "start_time"}, fields(t, bad.Validate()))
}

func postForm(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/venues/create", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestBindVenueDecodesMultiValueGenres(t *testing.T) {
	c := postForm(url.Values{
		"name":    {"The Musical Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz", "Swing"},
	})

	in, err := BindVenue(c)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", in.Name)
	assert.Equal(t, []string{"Jazz", "Swing"}, in.Genres)
	assert.Empty(t, in.Phone)
}

func TestBindRejectsUnknownFields(t *testing.T) {
	c := postForm(url.Values{
		"name":           {"Guns N Petals"},
		"seeking_venue":  {"y"},
		"admin_override": {"1"},
	})

	_, err := BindArtist(c)
	assert.Equal(t, []string{"admin_override", "seeking_venue"}, fields(t, err))
}
