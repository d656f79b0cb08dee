package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	p := Resolve(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Resolve(3, 500)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())

	p = Resolve(math.MaxInt, MaxLimit)
	assert.Equal(t, MaxPage, p.Page)
	assert.Equal(t, (MaxPage-1)*MaxLimit, p.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Resolve(1, 20), 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 41, meta.Total)

	meta = NewMeta(Resolve(1, 20), 0)
	assert.Equal(t, 0, meta.TotalPages)
}
