package venue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	respond *views.Responder
	now     func() time.Time
}

func NewService(db *gorm.DB, respond *views.Responder) *Service {
	return &Service{db: db, respond: respond, now: time.Now}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/venues", s.ListVenues)
	r.POST("/venues/search", s.SearchVenues)
	r.GET("/venues/create", s.CreateVenueForm)
	r.POST("/venues/create", s.CreateVenueSubmission)
	r.GET("/venues/:id", s.GetVenue)
	r.DELETE("/venues/:id", s.DeleteVenue)
	r.POST("/venues/:id/delete", s.DeleteVenue)
	r.GET("/venues/:id/edit", s.EditVenueForm)
	r.POST("/venues/:id/edit", s.EditVenueSubmission)
}

// Areas groups every venue under its distinct (state, city) pair, pairs
// ordered by state then city. Venues carry their shows for counting.
func (s *Service) Areas(ctx context.Context) ([]models.Area, error) {
	db := s.db.WithContext(ctx)

	var areas []models.Area
	if err := db.Model(&models.Venue{}).Distinct("state", "city").Order("state, city").Scan(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch areas: %w", err)
	}

	for i := range areas {
		err := db.Preload("Shows").
			Where("state = ? AND city = ?", areas[i].State, areas[i].City).
			Order("id").
			Find(&areas[i].Venues).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch venues in %s, %s: %w", areas[i].City, areas[i].State, err)
		}
	}
	return areas, nil
}

// Search matches term as a case-insensitive substring of the venue name.
// An empty term matches every venue.
func (s *Service) Search(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).
		Preload("Shows").
		Scopes(database.NameContains(term)).
		Order("id").
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	return venues, nil
}

// Find loads one venue with its shows, each carrying its artist.
func (s *Service) Find(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB { return db.Order("start_time, id") }).
		Preload("Shows.Artist").
		First(&venue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("venue", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}
	return &venue, nil
}

func (s *Service) Create(ctx context.Context, in forms.VenueInput) (*models.Venue, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var venue models.Venue
	apply(&venue, in)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&venue).Error
	})
	if err != nil {
		return nil, apperr.Storage("create", "venue", err)
	}
	return &venue, nil
}

// Update overwrites every editable field of the venue, including the ones
// left blank in the submission. A missing venue is reported before the
// input is validated.
func (s *Service) Update(ctx context.Context, id uint, in forms.VenueInput) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).First(&venue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("venue", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venue: %w", err)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	apply(&venue, in)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(&venue).Error
	})
	if err != nil {
		return nil, apperr.Storage("update", "venue", err)
	}
	return &venue, nil
}

// Delete removes the venue together with every show held there.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, id).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("venue", id)
	}
	if err != nil {
		return apperr.Storage("delete", "venue", err)
	}
	return nil
}

func apply(v *models.Venue, in forms.VenueInput) {
	v.Name = in.Name
	v.City = in.City
	v.State = in.State
	v.Address = in.Address
	v.Phone = in.Phone
	v.ImageLink = in.ImageLink
	v.FacebookLink = in.FacebookLink
	v.Genres = models.Genres(in.Genres)
}

func (s *Service) ListVenues(c *gin.Context) {
	areas, err := s.Areas(c.Request.Context())
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/venues.html", views.NewAreaViews(areas, s.now()))
}

func (s *Service) SearchVenues(c *gin.Context) {
	term := c.PostForm("search_term")
	venues, err := s.Search(c.Request.Context(), term)
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/search_venues.html", views.NewVenueResults(term, venues, s.now()))
}

func (s *Service) GetVenue(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	venue, err := s.Find(c.Request.Context(), id)
	if err != nil {
		s.respond.Fail(c, err, "/venues", "")
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/show_venue.html", views.NewVenueDetail(venue, s.now()))
}

func (s *Service) CreateVenueForm(c *gin.Context) {
	s.respond.Page(c, http.StatusOK, "forms/venue.html", newForm(forms.VenueInput{}, nil))
}

func (s *Service) CreateVenueSubmission(c *gin.Context) {
	in, err := forms.BindVenue(c)
	var venue *models.Venue
	if err == nil {
		venue, err = s.Create(c.Request.Context(), in)
	}

	if verr, ok := apperr.IsValidation(err); ok {
		s.respond.Page(c, http.StatusUnprocessableEntity, "forms/venue.html", newForm(in, verr.Messages()))
		return
	}
	if err != nil {
		s.respond.Fail(c, err, "/", "An error occurred. Venue "+in.Name+" could not be listed.")
		return
	}
	s.respond.Redirect(c, venuePath(venue.ID), "Venue "+venue.Name+" was successfully listed!")
}

func (s *Service) EditVenueForm(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	venue, err := s.Find(c.Request.Context(), id)
	if err != nil {
		s.respond.Fail(c, err, "/venues", "")
		return
	}
	s.respond.Page(c, http.StatusOK, "forms/venue.html", editForm(id, views.VenueValues(venue), nil))
}

func (s *Service) EditVenueSubmission(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	in, err := forms.BindVenue(c)
	var venue *models.Venue
	if err == nil {
		venue, err = s.Update(c.Request.Context(), id, in)
	}

	if verr, ok := apperr.IsValidation(err); ok {
		s.respond.Page(c, http.StatusUnprocessableEntity, "forms/venue.html", editForm(id, in, verr.Messages()))
		return
	}
	if err != nil {
		s.respond.Fail(c, err, venuePath(id), "An error occurred. Venue "+in.Name+" could not be updated.")
		return
	}
	s.respond.Redirect(c, venuePath(id), "Venue "+venue.Name+" was successfully updated!")
}

// DeleteVenue serves both DELETE /venues/:id and the form post fallback.
func (s *Service) DeleteVenue(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	if err := s.Delete(c.Request.Context(), id); err != nil {
		s.respond.Fail(c, err, venuePath(id), "An error occurred. Venue could not be deleted.")
		return
	}
	s.respond.Redirect(c, "/", "Venue deleted!")
}

func venuePath(id uint) string {
	return "/venues/" + strconv.FormatUint(uint64(id), 10)
}

func newForm(in forms.VenueInput, errs []string) views.VenueForm {
	return views.VenueForm{
		Title:  "List a new venue",
		Action: "/venues/create",
		Values: in,
		Errors: errs,
		Genres: forms.GenreChoices,
		States: forms.StateChoices,
	}
}

func editForm(id uint, in forms.VenueInput, errs []string) views.VenueForm {
	f := newForm(in, errs)
	f.Title = "Edit venue " + in.Name
	f.Action = venuePath(id) + "/edit"
	f.Editing = true
	return f
}
