package repository

import (
	"math"
	"strings"
)

// ListQuery carries the paging and search parameters common to every list.
// All=true asks for every active row without pagination.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	All    bool
}

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// MaxPage caps the page number so Offset stays within a 32-bit OFFSET.
const MaxPage = math.MaxInt32 / MaxLimit

// Normalize clamps page and limit, using def when limit is unset.
func (q ListQuery) Normalize(def int) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = def
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset returns the row offset of the current page.
func (q ListQuery) Offset() int {
	page, limit := min(max(q.Page, 1), MaxPage), min(max(q.Limit, 0), MaxLimit)
	return (page - 1) * limit
}

// PageMeta describes one page of a paginated list.
type PageMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"perPage"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
}

// Page is the paginated list payload returned in the envelope's data field.
type Page[T any] struct {
	Meta PageMeta `json:"meta"`
	Data []T      `json:"data"`
}

// NewPage wraps items with paging metadata computed from total.
func NewPage[T any](items []T, total int64, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}
	last := 1
	if q.Limit > 0 && total > 0 {
		last = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Page[T]{
		Meta: PageMeta{Total: total, PerPage: q.Limit, CurrentPage: q.Page, LastPage: last},
		Data: items,
	}
}

// where accumulates AND-ed conditions and their placeholder arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// like adds a case-insensitive substring match over one or more columns.
// Wildcards in term match literally.
func (w *where) like(term string, cols ...string) {
	if term == "" {
		return
	}
	pat := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pat
	}
	w.add("("+strings.Join(parts, " OR ")+")", args...)
}

// sql renders the clause including the WHERE keyword, or "" when empty.
func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// placeholders returns "?,?,?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
