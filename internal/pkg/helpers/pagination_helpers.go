package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/placementhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// PageRequest is a validated 1-based page request.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the SQL offset for the page.
func (p PageRequest) Offset() uint64 {
	offset, _ := CalculateOffsetLimit(p.Page, p.Size)
	return offset
}

// Limit returns the SQL limit for the page.
func (p PageRequest) Limit() uint64 {
	_, limit := CalculateOffsetLimit(p.Page, p.Size)
	return uint64(limit)
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}
	if page < 1 {
		page = DefaultPage
	}
	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts and validates the page and size query parameters
func ParsePaginationParams(c *gin.Context) PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return PageRequest{Page: page, Size: size}
}
