package show

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/JonasLeetTheWay/fyyur-go/internal/forms"
	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
	"github.com/JonasLeetTheWay/fyyur-go/internal/views"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db      *gorm.DB
	respond *views.Responder
}

func NewService(db *gorm.DB, respond *views.Responder) *Service {
	return &Service{db: db, respond: respond}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/shows", s.ListShows)
	r.GET("/shows/create", s.CreateShowForm)
	r.POST("/shows/create", s.CreateShowSubmission)
	r.DELETE("/shows/:id", s.DeleteShow)
	r.POST("/shows/:id/delete", s.DeleteShow)
}

// List returns every show with both sides loaded, in id order.
func (s *Service) List(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	if err := s.db.WithContext(ctx).Preload("Artist").Preload("Venue").Order("id").Find(&shows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shows: %w", err)
	}
	return shows, nil
}

// Create books an artist at a venue. Unknown ids are left to the store's
// foreign keys and come back as a storage error.
func (s *Service) Create(ctx context.Context, in forms.ShowInput) (*models.Show, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	artistID, venueID, start := in.Values()
	show := models.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&show).Error
	})
	if err != nil {
		return nil, apperr.Storage("create", "show", err)
	}
	return &show, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var show models.Show
		if err := tx.First(&show, id).Error; err != nil {
			return err
		}
		return tx.Delete(&show).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("show", id)
	}
	if err != nil {
		return apperr.Storage("delete", "show", err)
	}
	return nil
}

// choices lists the artists and venues a show can be booked between.
func (s *Service) choices(ctx context.Context) (artists, venues []views.Summary, err error) {
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Artist{}).Select("id", "name").Order("id").Scan(&artists).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch artists: %w", err)
	}
	if err := db.Model(&models.Venue{}).Select("id", "name").Order("id").Scan(&venues).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to fetch venues: %w", err)
	}
	return artists, venues, nil
}

func (s *Service) ListShows(c *gin.Context) {
	shows, err := s.List(c.Request.Context())
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/shows.html", views.NewShowRows(shows))
}

func (s *Service) CreateShowForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, forms.ShowInput{}, nil)
}

func (s *Service) CreateShowSubmission(c *gin.Context) {
	in, err := forms.BindShow(c)
	if err == nil {
		_, err = s.Create(c.Request.Context(), in)
	}

	if verr, ok := apperr.IsValidation(err); ok {
		s.renderForm(c, http.StatusUnprocessableEntity, in, verr.Messages())
		return
	}
	if err != nil {
		s.respond.Fail(c, err, "/", "An error occurred. Show could not be listed.")
		return
	}
	s.respond.Redirect(c, "/shows", "Show was successfully listed!")
}

func (s *Service) DeleteShow(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	if err := s.Delete(c.Request.Context(), id); err != nil {
		s.respond.Fail(c, err, "/shows", "An error occurred. Show could not be deleted.")
		return
	}
	s.respond.Redirect(c, "/shows", "Show deleted!")
}

func (s *Service) renderForm(c *gin.Context, status int, in forms.ShowInput, errs []string) {
	artists, venues, err := s.choices(c.Request.Context())
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, status, "forms/show.html", views.ShowForm{
		Values:  in,
		Errors:  errs,
		Artists: artists,
		Venues:  venues,
	})
}
