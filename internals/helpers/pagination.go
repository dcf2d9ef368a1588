package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage = 1
)

type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// ===== Preset =====
var (
	DefaultOpts = Options{DefaultLimit: 10, MaxLimit: 100}
	ExportOpts  = Options{DefaultLimit: 10_000, MaxLimit: 10_000}
)

type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc|desc
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseFiber reads ?page, ?limit, ?sortBy, ?sortOrder (snake_case aliases accepted).
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := atoiDefault(firstNonEmpty(c.Query("limit"), c.Query("per_page")), opt.DefaultLimit)
	if limit < 1 {
		limit = opt.DefaultLimit
	}
	if opt.MaxLimit > 0 && limit > opt.MaxLimit {
		limit = opt.MaxLimit
	}

	sortBy := strings.TrimSpace(firstNonEmpty(c.Query("sortBy"), c.Query("sort_by")))
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	order := strings.ToLower(strings.TrimSpace(firstNonEmpty(c.Query("sortOrder"), c.Query("order"))))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultSortOrder)
		if order != "asc" && order != "desc" {
			order = "asc"
		}
	}

	return Params{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: order,
	}
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// OrderColumn maps SortBy through a whitelist of column names and returns
// "<col> ASC|DESC". Unknown keys fall back to defaultKey.
func (p Params) OrderColumn(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "ASC"
	if p.SortOrder == "desc" {
		dir = "DESC"
	}
	return col + " " + dir
}

// Like builds a LIKE pattern from free text.
func Like(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}
