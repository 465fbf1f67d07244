package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 20, 0, 20},
		{"third page", 3, 10, 20, 10},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"oversized page size falls back", 2, 500, DefaultPageSize, DefaultPageSize},
		{"zero size falls back", 1, 0, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		info := NewPaginationInfo(42, 2, 10)
		assert.Equal(t, 2, info.CurrentPage)
		assert.Equal(t, 5, info.TotalPages)
		assert.Equal(t, 10, info.PageSize)
		assert.Equal(t, int64(42), info.TotalItems)
	})

	t.Run("empty list still reports one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.TotalPages)
		assert.Equal(t, 1, info.CurrentPage)
	})

	t.Run("page beyond the end clamps", func(t *testing.T) {
		info := NewPaginationInfo(15, 9, 10)
		assert.Equal(t, 2, info.CurrentPage)
		assert.Equal(t, 2, info.TotalPages)
	})
}

func TestParsePaginationParams(t *testing.T) {
	newCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/students"+query, nil)
		return c
	}

	t.Run("reads valid params", func(t *testing.T) {
		page, size := ParsePaginationParams(newCtx("?page=3&size=50"))
		assert.Equal(t, 3, page)
		assert.Equal(t, 50, size)
	})

	t.Run("defaults when absent", func(t *testing.T) {
		page, size := ParsePaginationParams(newCtx(""))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
	})

	t.Run("rejects garbage and out-of-range values", func(t *testing.T) {
		page, size := ParsePaginationParams(newCtx("?page=abc&size=-5"))
		assert.Equal(t, DefaultPage, page)
		assert.Equal(t, DefaultPageSize, size)
	})
}
