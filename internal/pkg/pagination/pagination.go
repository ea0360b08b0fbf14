package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and validates page/limit params from the request.
func FromContext(c *gin.Context) Query {
	return FromContextDefault(c, DefaultLimit)
}

// FromContextDefault is FromContext with a caller-chosen default page size.
func FromContextDefault(c *gin.Context, defaultLimit int) Query {
	page := parseIntOr(c.DefaultQuery("page", ""), DefaultPage)
	limit := parseIntOr(c.DefaultQuery("limit", ""), defaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Query{Page: page, Limit: limit}
}

// Sort holds a validated sort column and direction.
type Sort struct {
	Column string
	Desc   bool
}

// SortFromContext parses sort/order params, restricted to an allow-list of
// column names so user input never reaches the ORDER BY clause directly.
func SortFromContext(c *gin.Context, allowed []string, defaultColumn string) Sort {
	col := strings.TrimSpace(c.DefaultQuery("sort", defaultColumn))
	ok := false
	for _, a := range allowed {
		if col == a {
			ok = true
			break
		}
	}
	if !ok {
		col = defaultColumn
	}
	order := strings.ToUpper(strings.TrimSpace(c.DefaultQuery("order", "DESC")))
	return Sort{Column: col, Desc: order != "ASC"}
}

// Clause renders the sort as an ORDER BY fragment.
func (s Sort) Clause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return s.Column + " " + dir
}

// Paginate applies limit/offset to a GORM query and returns the pagination
// metadata for the response envelope.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := db.Offset(offset).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		Limit:       q.Limit,
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
