package forms

import (
	"strconv"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/timefmt"
	"github.com/gin-gonic/gin"
)

// VenueInput is the full editable field set of a venue.
type VenueInput struct {
	Name         string   `form:"name" validate:"required"`
	City         string   `form:"city" validate:"required,max=120"`
	State        string   `form:"state" validate:"required,usstate"`
	Address      string   `form:"address" validate:"required,max=120"`
	Phone        string   `form:"phone" validate:"omitempty,phone"`
	ImageLink    string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink string   `form:"facebook_link" validate:"omitempty,http_url,max=120"`
	Genres       []string `form:"genres" validate:"required,min=1,dive,genre"`
}

func (in *VenueInput) Validate() error {
	trimAll(&in.Name, &in.City, &in.State, &in.Address, &in.Phone, &in.ImageLink, &in.FacebookLink)
	in.Genres = trimList(in.Genres)
	return check(in)
}

// ArtistInput is the full editable field set of an artist.
type ArtistInput struct {
	Name         string   `form:"name" validate:"required"`
	City         string   `form:"city" validate:"required,max=120"`
	State        string   `form:"state" validate:"required,usstate"`
	Phone        string   `form:"phone" validate:"omitempty,phone"`
	ImageLink    string   `form:"image_link" validate:"omitempty,http_url,max=500"`
	FacebookLink string   `form:"facebook_link" validate:"omitempty,http_url,max=120"`
	Genres       []string `form:"genres" validate:"required,min=1,dive,genre"`
}

func (in *ArtistInput) Validate() error {
	trimAll(&in.Name, &in.City, &in.State, &in.Phone, &in.ImageLink, &in.FacebookLink)
	in.Genres = trimList(in.Genres)
	return check(in)
}

// ShowInput keeps ids and time as text so that a malformed value is reported
// as a field error rather than a decode failure.
type ShowInput struct {
	ArtistID  string `form:"artist_id" validate:"required,id"`
	VenueID   string `form:"venue_id" validate:"required,id"`
	StartTime string `form:"start_time" validate:"required,timestamp"`
}

func (in *ShowInput) Validate() error {
	trimAll(&in.ArtistID, &in.VenueID, &in.StartTime)
	return check(in)
}

// Values returns the parsed fields; call it only after Validate succeeded.
func (in *ShowInput) Values() (artistID, venueID uint, start time.Time) {
	a, _ := strconv.ParseUint(in.ArtistID, 10, 64)
	v, _ := strconv.ParseUint(in.VenueID, 10, 64)
	start, _ = timefmt.Parse(in.StartTime)
	return uint(a), uint(v), start
}

func BindVenue(c *gin.Context) (VenueInput, error) {
	var in VenueInput
	err := bind(c, &in)
	return in, err
}

func BindArtist(c *gin.Context) (ArtistInput, error) {
	var in ArtistInput
	err := bind(c, &in)
	return in, err
}

func BindShow(c *gin.Context) (ShowInput, error) {
	var in ShowInput
	err := bind(c, &in)
	return in, err
}
