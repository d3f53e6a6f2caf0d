package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseQueryParamsDefaults(t *testing.T) {
	params := ParseQueryParams(contextWithQuery(""))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "created_at", params.Sort.Field)
	assert.Equal(t, "desc", params.Sort.Order)
	assert.Empty(t, params.Filters)
}

func TestParseQueryParamsClampsPagination(t *testing.T) {
	params := ParseQueryParams(contextWithQuery("page=-5&limit=9999"))

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.Limit)
}

func TestParseQueryParamsFilters(t *testing.T) {
	params := ParseQueryParams(contextWithQuery("filters[status]=ACTIVE&filters[department]=Engineering&search=jane"))

	assert.Equal(t, "ACTIVE", params.Filters["status"])
	assert.Equal(t, "Engineering", params.Filters["department"])
	assert.Equal(t, "jane", params.Search)
}

func TestPaginateSlice(t *testing.T) {
	start, end := PaginateSlice(25, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	start, end = PaginateSlice(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// Past the end: empty window, never a panic
	start, end = PaginateSlice(25, 9, 10)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)

	start, end = PaginateSlice(0, 1, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestBuildPaginationResponse(t *testing.T) {
	resp := BuildPaginationResponse(2, 10, 25)

	assert.Equal(t, int64(3), resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	last := BuildPaginationResponse(3, 10, 25)
	assert.False(t, last.HasNext)
}
