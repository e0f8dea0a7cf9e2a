package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ServeStatic serves files straight off a folder with a year-long cache
// header. Filenames are random so a changed image means a changed URL
func (a *API) ServeStatic(folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Param comes from the URL, keep it from walking out of the folder
		name := filepath.Base(c.Param("filename"))
		path := filepath.Join(folder, name)

		if _, err := os.Stat(path); err != nil {
			c.Status(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "public, max-age=31536000")
		c.File(path)
	}
}
