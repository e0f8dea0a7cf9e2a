package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// listPage is the envelope every paginated listing responds with
type listPage struct {
	Content    any   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"totalPages"`
}

// pagination reads page/size query parameters. Non-numeric input falls
// back to page 0 / size 10 and size is kept within [1,10]
func pagination(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err = strconv.Atoi(c.Query("size"))
	if err != nil || size < 1 || size > 10 {
		size = 10
	}

	return page, size
}

func totalPages(count int64, size int) int64 {
	return (count + int64(size) - 1) / int64(size)
}
