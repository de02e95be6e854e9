package repository

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Order is one sort key.
type Order struct {
	Property  string
	Direction Direction
}

// Sort is an ordered list of sort keys. The zero value means unsorted.
type Sort struct {
	Orders []Order
}

// SortBy sorts ascending by each property in turn.
func SortBy(properties ...string) Sort {
	orders := make([]Order, 0, len(properties))
	for _, p := range properties {
		orders = append(orders, Order{Property: p, Direction: Asc})
	}
	return Sort{Orders: orders}
}

// Descending returns a copy of s with every key flipped to DESC.
func (s Sort) Descending() Sort {
	return s.withDirection(Desc)
}

func (s Sort) Ascending() Sort {
	return s.withDirection(Asc)
}

func (s Sort) withDirection(d Direction) Sort {
	orders := make([]Order, len(s.Orders))
	for i, o := range s.Orders {
		orders[i] = Order{Property: o.Property, Direction: d}
	}
	return Sort{Orders: orders}
}

func (s Sort) IsUnsorted() bool {
	return len(s.Orders) == 0
}

func (s Sort) String() string {
	if s.IsUnsorted() {
		return "UNSORTED"
	}
	parts := make([]string, 0, len(s.Orders))
	for _, o := range s.Orders {
		parts = append(parts, o.Property+": "+o.Direction.String())
	}
	return strings.Join(parts, ", ")
}

// PageRequest asks for the zero-based page Page of size Size.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

func PageOf(page, size int, sort ...Sort) PageRequest {
	req := PageRequest{Page: page, Size: size}
	if len(sort) > 0 {
		req.Sort = sort[0]
	}
	return req
}

func (r PageRequest) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: page index must not be negative", ErrInvalidPage)
	}
	if r.Size < 1 {
		return fmt.Errorf("%w: page size must be at least one", ErrInvalidPage)
	}
	return nil
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is a bounded slice of results plus the total row count.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Number        int
	Size          int
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content:       content,
		TotalElements: total,
		Number:        req.Page,
		Size:          req.Size,
	}
}

// TotalPages is ceil(TotalElements / Size).
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}
