package paginate

import (
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const PageSize = 10

// Page is one slice of an ordered result set. Numbers are 1-based.
type Page[T any] struct {
	Items          []T   `json:"items"`
	Number         int   `json:"number"`
	Size           int   `json:"size"`
	Total          int64 `json:"total"`
	NumPages       int   `json:"num_pages"`
	HasPrevious    bool  `json:"has_previous"`
	HasNext        bool  `json:"has_next"`
	PreviousNumber int   `json:"previous_page_number,omitempty"`
	NextNumber     int   `json:"next_page_number,omitempty"`
}

// Parse reads a "page" query value. Absent, non-numeric and non-positive
// values select the first page.
func Parse(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func numPages(total int64, size int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Paginate counts q and loads the requested page of it. A page past the end
// falls back to page 1. q must already carry its model and ordering; scopes
// (preloads, typically) apply to the page query only.
func Paginate[T any](q *gorm.DB, number, size int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if size < 1 {
		size = PageSize
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count")
	}
	pages := numPages(total, size)
	if number < 1 || number > pages {
		number = 1
	}

	items := make([]T, 0, size)
	if err := q.Session(&gorm.Session{}).Scopes(scopes...).Limit(size).Offset((number - 1) * size).Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "page")
	}

	p := &Page[T]{
		Items:       items,
		Number:      number,
		Size:        size,
		Total:       total,
		NumPages:    pages,
		HasPrevious: number > 1,
		HasNext:     number < pages,
	}
	if p.HasPrevious {
		p.PreviousNumber = number - 1
	}
	if p.HasNext {
		p.NextNumber = number + 1
	}
	return p, nil
}
