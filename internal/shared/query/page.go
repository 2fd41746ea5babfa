package query

import (
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects one page of a result set. Number is zero-based.
type PageRequest struct {
	Number int `form:"page" json:"page"`
	Size   int `form:"size" json:"size"`
}

// NewPageRequest applies the defaults used by the request layer: page 0,
// size DefaultPageSize, size capped at MaxPageSize.
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Number: number, Size: size}
}

func (p PageRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Number, validation.Min(0).Error("page must be >= 0")),
		validation.Field(&p.Size,
			validation.Required.Error("size must be > 0"),
			validation.Min(1).Error("size must be > 0"),
		),
	)
}

// Offset saturates at math.MaxInt so a page far past the end stays past it.
func (p PageRequest) Offset() uint {
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return uint(p.Number) * uint(p.Size)
}

func (p PageRequest) Limit() uint {
	return uint(p.Size)
}

// Page is one slice of a larger result set. TotalElements is the number of
// rows matching the query, not len(Content).
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		PageNumber:    req.Number,
		PageSize:      req.Size,
		TotalElements: total,
	}
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// Slice cuts the requested page out of an already filtered, ordered list.
func Slice[T any](items []T, req PageRequest) Page[T] {
	total := int64(len(items))
	start := int(req.Offset())
	if start > len(items) {
		start = len(items)
	}
	end := start + req.Size
	if end > len(items) {
		end = len(items)
	}
	return NewPage(append([]T(nil), items[start:end]...), req, total)
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return Page[U]{
		Content:       out,
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
	}
}
