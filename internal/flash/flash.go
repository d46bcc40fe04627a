// Package flash carries one-shot user notices across a redirect.
package flash

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Store queues messages for the next request of the same browser.
type Store interface {
	Add(c *gin.Context, message string) error
	Pop(c *gin.Context) ([]string, error)
}

const pendingKey = "flash.pending"

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}
