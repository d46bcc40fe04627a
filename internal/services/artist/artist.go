package artist

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
	r.GET("/artists", s.ListArtists)
	r.POST("/artists/search", s.SearchArtists)
	r.GET("/artists/create", s.CreateArtistForm)
	r.POST("/artists/create", s.CreateArtistSubmission)
	r.GET("/artists/:id", s.GetArtist)
	r.DELETE("/artists/:id", s.DeleteArtist)
	r.POST("/artists/:id/delete", s.DeleteArtist)
	r.GET("/artists/:id/edit", s.EditArtistForm)
	r.POST("/artists/:id/edit", s.EditArtistSubmission)
}

// List returns every artist in id order, shows preloaded for counting.
func (s *Service) List(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := s.db.WithContext(ctx).Preload("Shows").Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch artists: %w", err)
	}
	return artists, nil
}

func (s *Service) Search(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	err := s.db.WithContext(ctx).
		Preload("Shows").
		Scopes(database.NameContains(term)).
		Order("id").
		Find(&artists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	return artists, nil
}

// Find loads one artist with its shows, each carrying its venue.
func (s *Service) Find(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := s.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB { return db.Order("start_time, id") }).
		Preload("Shows.Venue").
		First(&artist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("artist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist: %w", err)
	}
	return &artist, nil
}

func (s *Service) Create(ctx context.Context, in forms.ArtistInput) (*models.Artist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var artist models.Artist
	apply(&artist, in)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&artist).Error
	})
	if err != nil {
		return nil, apperr.Storage("create", "artist", err)
	}
	return &artist, nil
}

func (s *Service) Update(ctx context.Context, id uint, in forms.ArtistInput) (*models.Artist, error) {
	var artist models.Artist
	err := s.db.WithContext(ctx).First(&artist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("artist", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist: %w", err)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	apply(&artist, in)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(&artist).Error
	})
	if err != nil {
		return nil, apperr.Storage("update", "artist", err)
	}
	return &artist, nil
}

// Delete removes the artist and every show they were booked for.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artist models.Artist
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("artist", id)
	}
	if err != nil {
		return apperr.Storage("delete", "artist", err)
	}
	return nil
}

func apply(a *models.Artist, in forms.ArtistInput) {
	a.Name = in.Name
	a.City = in.City
	a.State = in.State
	a.Phone = in.Phone
	a.ImageLink = in.ImageLink
	a.FacebookLink = in.FacebookLink
	a.Genres = models.Genres(in.Genres)
}

func (s *Service) ListArtists(c *gin.Context) {
	artists, err := s.List(c.Request.Context())
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/artists.html", views.ArtistSummaries(artists, s.now()))
}

func (s *Service) SearchArtists(c *gin.Context) {
	term := c.PostForm("search_term")
	artists, err := s.Search(c.Request.Context(), term)
	if err != nil {
		s.respond.ServerError(c, err)
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/search_artists.html", views.NewArtistResults(term, artists, s.now()))
}

func (s *Service) GetArtist(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	artist, err := s.Find(c.Request.Context(), id)
	if err != nil {
		s.respond.Fail(c, err, "/artists", "")
		return
	}
	s.respond.Page(c, http.StatusOK, "pages/show_artist.html", views.NewArtistDetail(artist, s.now()))
}

func (s *Service) CreateArtistForm(c *gin.Context) {
	s.respond.Page(c, http.StatusOK, "forms/artist.html", newForm(forms.ArtistInput{}, nil))
}

func (s *Service) CreateArtistSubmission(c *gin.Context) {
	in, err := forms.BindArtist(c)
	var artist *models.Artist
	if err == nil {
		artist, err = s.Create(c.Request.Context(), in)
	}

	if verr, ok := apperr.IsValidation(err); ok {
		s.respond.Page(c, http.StatusUnprocessableEntity, "forms/artist.html", newForm(in, verr.Messages()))
		return
	}
	if err != nil {
		s.respond.Fail(c, err, "/", "An error occurred. Artist "+in.Name+" could not be listed.")
		return
	}
	s.respond.Redirect(c, artistPath(artist.ID), "Artist "+artist.Name+" was successfully listed!")
}

func (s *Service) EditArtistForm(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	artist, err := s.Find(c.Request.Context(), id)
	if err != nil {
		s.respond.Fail(c, err, "/artists", "")
		return
	}
	s.respond.Page(c, http.StatusOK, "forms/artist.html", editForm(id, views.ArtistValues(artist), nil))
}

func (s *Service) EditArtistSubmission(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	in, err := forms.BindArtist(c)
	var artist *models.Artist
	if err == nil {
		artist, err = s.Update(c.Request.Context(), id, in)
	}

	if verr, ok := apperr.IsValidation(err); ok {
		s.respond.Page(c, http.StatusUnprocessableEntity, "forms/artist.html", editForm(id, in, verr.Messages()))
		return
	}
	if err != nil {
		s.respond.Fail(c, err, artistPath(id), "An error occurred. Artist "+in.Name+" could not be updated.")
		return
	}
	s.respond.Redirect(c, artistPath(id), "Artist "+artist.Name+" was successfully updated!")
}

func (s *Service) DeleteArtist(c *gin.Context) {
	id, ok := views.ParamID(c)
	if !ok {
		s.respond.NotFound(c)
		return
	}

	if err := s.Delete(c.Request.Context(), id); err != nil {
		s.respond.Fail(c, err, artistPath(id), "An error occurred. Artist could not be deleted.")
		return
	}
	s.respond.Redirect(c, "/artists", "Artist deleted!")
}

func artistPath(id uint) string {
	return "/artists/" + strconv.FormatUint(uint64(id), 10)
}

func newForm(in forms.ArtistInput, errs []string) views.ArtistForm {
	return views.ArtistForm{
		Title:  "List a new artist",
		Action: "/artists/create",
		Values: in,
		Errors: errs,
		Genres: forms.GenreChoices,
		States: forms.StateChoices,
	}
}

func editForm(id uint, in forms.ArtistInput, errs []string) views.ArtistForm {
	f := newForm(in, errs)
	f.Title = "Edit artist " + in.Name
	f.Action = artistPath(id) + "/edit"
	f.Editing = true
	return f
}
