package views

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/JonasLeetTheWay/fyyur-go/internal/apperr"
	"github.com/JonasLeetTheWay/fyyur-go/internal/flash"
	"github.com/gin-gonic/gin"
)

// Responder renders pages with the pending flash messages and maps failures
// to the error pages.
type Responder struct {
	flashes flash.Store
}

func NewResponder(flashes flash.Store) *Responder {
	return &Responder{flashes: flashes}
}

func (r *Responder) Page(c *gin.Context, status int, name string, data any) {
	msgs, err := r.flashes.Pop(c)
	if err != nil {
		log.Printf("Failed to read flash messages: %v", err)
	}
	c.HTML(status, name, Page{Flashes: msgs, Data: data})
}

func (r *Responder) NotFound(c *gin.Context) {
	r.Page(c, http.StatusNotFound, "errors/404.html", nil)
}

func (r *Responder) ServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	r.Page(c, http.StatusInternalServerError, "errors/500.html", nil)
}

// Redirect flashes message and sends the browser to location with a GET.
func (r *Responder) Redirect(c *gin.Context, location, message string) {
	if message != "" {
		if err := r.flashes.Add(c, message); err != nil {
			log.Printf("Failed to store flash message: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// Fail answers a failed read or write: a missing row renders the 404 page, a
// rolled back write flashes notice and redirects to fallback, anything else
// is a 500.
func (r *Responder) Fail(c *gin.Context, err error, fallback, notice string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		r.NotFound(c)
	case apperr.IsStorage(err):
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		r.Redirect(c, fallback, notice)
	default:
		r.ServerError(c, err)
	}
}

// ParamID reads the numeric :id route parameter.
func ParamID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
