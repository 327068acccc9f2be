package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// ParsePagination reads the page/size query parameters, falling back to
// page 0 and the given default size when absent or malformed
func ParsePagination(c *gin.Context, defaultSize int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 {
		size = defaultSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

func TotalPages(total int64, size int) int {
	return int(math.Ceil(float64(total) / float64(size)))
}
