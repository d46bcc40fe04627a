package views

import (
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/timefmt"
)

// Page wraps the data of every rendered template.
type Page struct {
	Flashes []string
	Data    any
}

// Summary is one row of a listing or search result.
type Summary struct {
	ID               uint
	Name             string
	NumUpcomingShows int
}

type AreaView struct {
	City   string
	State  string
	Venues []Summary
}

type SearchResults struct {
	SearchTerm string
	Count      int
	Data       []Summary
}

// ShowSlot is a show seen from one side: it names the other side.
type ShowSlot struct {
	ShowID    uint
	ID        uint
	Name      string
	ImageLink string
	StartTime string
}

type VenueDetail struct {
	ID               uint
	Name             string
	City             string
	State            string
	Address          string
	Phone            string
	ImageLink        string
	FacebookLink     string
	Genres           []string
	PastShows        []ShowSlot
	UpcomingShows    []ShowSlot
	NumPastShows     int
	NumUpcomingShows int
}

type ArtistDetail struct {
	ID               uint
	Name             string
	City             string
	State            string
	Phone            string
	ImageLink        string
	FacebookLink     string
	Genres           []string
	PastShows        []ShowSlot
	UpcomingShows    []ShowSlot
	NumPastShows     int
	NumUpcomingShows int
}

// ShowRow is a show with both sides joined in, as on the shows page.
type ShowRow struct {
	ID              uint
	ArtistID        uint
	VenueID         uint
	StartTime       string
	ArtistName      string
	ArtistImageLink string
	VenueName       string
	VenueImageLink  string
}

type VenueForm struct {
	Title   string
	Action  string
	Values  forms.VenueInput
	Errors  []string
	Genres  []string
	States  []string
	Editing bool
}

type ArtistForm struct {
	Title   string
	Action  string
	Values  forms.ArtistInput
	Errors  []string
	Genres  []string
	States  []string
	Editing bool
}

type ShowForm struct {
	Values  forms.ShowInput
	Errors  []string
	Artists []Summary
	Venues  []Summary
}

func NewAreaViews(areas []models.Area, now time.Time) []AreaView {
	out := make([]AreaView, 0, len(areas))
	for _, a := range areas {
		out = append(out, AreaView{City: a.City, State: a.State, Venues: venueSummaries(a.Venues, now)})
	}
	return out
}

func NewVenueResults(term string, venues []models.Venue, now time.Time) SearchResults {
	return SearchResults{SearchTerm: term, Count: len(venues), Data: venueSummaries(venues, now)}
}

func NewArtistResults(term string, artists []models.Artist, now time.Time) SearchResults {
	return SearchResults{SearchTerm: term, Count: len(artists), Data: ArtistSummaries(artists, now)}
}

func venueSummaries(venues []models.Venue, now time.Time) []Summary {
	out := make([]Summary, 0, len(venues))
	for _, v := range venues {
		out = append(out, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: models.CountUpcoming(v.Shows, now)})
	}
	return out
}

func ArtistSummaries(artists []models.Artist, now time.Time) []Summary {
	out := make([]Summary, 0, len(artists))
	for _, a := range artists {
		out = append(out, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: models.CountUpcoming(a.Shows, now)})
	}
	return out
}

// NewVenueDetail expects v.Shows to carry their Artist.
func NewVenueDetail(v *models.Venue, now time.Time) VenueDetail {
	past, upcoming := models.SplitShows(v.Shows, now)
	d := VenueDetail{
		ID:           v.ID,
		Name:         v.Name,
		City:         v.City,
		State:        v.State,
		Address:      v.Address,
		Phone:        v.Phone,
		ImageLink:    v.ImageLink,
		FacebookLink: v.FacebookLink,
		Genres:       v.Genres,
	}
	d.PastShows = artistSlots(past)
	d.UpcomingShows = artistSlots(upcoming)
	d.NumPastShows = len(d.PastShows)
	d.NumUpcomingShows = len(d.UpcomingShows)
	return d
}

// NewArtistDetail expects a.Shows to carry their Venue.
func NewArtistDetail(a *models.Artist, now time.Time) ArtistDetail {
	past, upcoming := models.SplitShows(a.Shows, now)
	d := ArtistDetail{
		ID:           a.ID,
		Name:         a.Name,
		City:         a.City,
		State:        a.State,
		Phone:        a.Phone,
		ImageLink:    a.ImageLink,
		FacebookLink: a.FacebookLink,
		Genres:       a.Genres,
	}
	d.PastShows = venueSlots(past)
	d.UpcomingShows = venueSlots(upcoming)
	d.NumPastShows = len(d.PastShows)
	d.NumUpcomingShows = len(d.UpcomingShows)
	return d
}

func artistSlots(shows []models.Show) []ShowSlot {
	out := make([]ShowSlot, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowSlot{
			ShowID:    s.ID,
			ID:        s.ArtistID,
			Name:      s.Artist.Name,
			ImageLink: s.Artist.ImageLink,
			StartTime: timefmt.Text(s.StartTime),
		})
	}
	return out
}

func venueSlots(shows []models.Show) []ShowSlot {
	out := make([]ShowSlot, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowSlot{
			ShowID:    s.ID,
			ID:        s.VenueID,
			Name:      s.Venue.Name,
			ImageLink: s.Venue.ImageLink,
			StartTime: timefmt.Text(s.StartTime),
		})
	}
	return out
}

// NewShowRows expects every show to carry both Artist and Venue.
func NewShowRows(shows []models.Show) []ShowRow {
	out := make([]ShowRow, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowRow{
			ID:              s.ID,
			ArtistID:        s.ArtistID,
			VenueID:         s.VenueID,
			StartTime:       timefmt.Text(s.StartTime),
			ArtistName:      s.Artist.Name,
			ArtistImageLink: s.Artist.ImageLink,
			VenueName:       s.Venue.Name,
			VenueImageLink:  s.Venue.ImageLink,
		})
	}
	return out
}

// VenueValues prefills an edit form from the stored row.
func VenueValues(v *models.Venue) forms.VenueInput {
	return forms.VenueInput{
		Name:         v.Name,
		City:         v.City,
		State:        v.State,
		Address:      v.Address,
		Phone:        v.Phone,
		ImageLink:    v.ImageLink,
		FacebookLink: v.FacebookLink,
		Genres:       v.Genres,
	}
}

func ArtistValues(a *models.Artist) forms.ArtistInput {
	return forms.ArtistInput{
		Name:         a.Name,
		City:         a.City,
		State:        a.State,
		Phone:        a.Phone,
		ImageLink:    a.ImageLink,
		FacebookLink: a.FacebookLink,
		Genres:       a.Genres,
	}
}
