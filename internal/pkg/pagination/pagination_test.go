package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Normalize(t *testing.T) {
	opts := &Options{Page: 0, Limit: 0, SortBy: "", SortOrder: "sideways"}
	opts.Normalize()

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, "created_at", opts.SortBy)
	assert.Equal(t, "desc", opts.SortOrder)
}

func TestOptions_Normalize_CapsLimit(t *testing.T) {
	opts := &Options{Page: 2, Limit: 1000, SortBy: "created_at", SortOrder: "asc"}
	opts.Normalize()

	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, "asc", opts.SortOrder)
}

func TestOptions_Offset(t *testing.T) {
	opts := &Options{Page: 3, Limit: 10}
	assert.Equal(t, 20, opts.Offset())

	opts = &Options{Page: 1, Limit: 25}
	assert.Equal(t, 0, opts.Offset())
}

func TestOptions_OrderClause_Whitelist(t *testing.T) {
	opts := &Options{SortBy: "rating", SortOrder: "asc"}
	opts.Normalize()
	assert.Equal(t, "rating ASC", opts.OrderClause("created_at", "rating"))

	// 不在白名单内回退到 created_at
	opts = &Options{SortBy: "password_hash; DROP TABLE users", SortOrder: "desc"}
	opts.Normalize()
	assert.Equal(t, "created_at DESC", opts.OrderClause("created_at", "rating"))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(0), TotalPages(5, 0))
}
