package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	meta := CalculatePagination(3, 10, 23)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(23), meta.Total)
	assert.Equal(t, 3, meta.Pages)

	// Exact multiple does not add a trailing page
	meta = CalculatePagination(1, 10, 30)
	assert.Equal(t, 3, meta.Pages)

	// Empty result set
	meta = CalculatePagination(1, 10, 0)
	assert.Equal(t, 0, meta.Pages)
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePage(-3, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = NormalizePage(2, 25)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, limit)
}
