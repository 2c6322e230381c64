package pagination

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options 分页与排序查询参数
type Options struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"` // asc, desc
}

// Normalize 修正非法取值
func (o *Options) Normalize() {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 || o.Limit > MaxLimit {
		o.Limit = DefaultLimit
	}
	if o.SortBy == "" {
		o.SortBy = "created_at"
	}
	if o.SortOrder != "asc" && o.SortOrder != "desc" {
		o.SortOrder = "desc"
	}
}

// Offset 计算跳过的行数
func (o *Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

// OrderClause 生成排序子句，sort_by 必须在白名单内，否则回退到 created_at
func (o *Options) OrderClause(allowed ...string) string {
	column := "created_at"
	for _, a := range allowed {
		if strings.EqualFold(o.SortBy, a) {
			column = a
			break
		}
	}
	return fmt.Sprintf("%s %s", column, strings.ToUpper(o.SortOrder))
}

// TotalPages 计算总页数
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}
