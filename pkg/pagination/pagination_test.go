package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
}
