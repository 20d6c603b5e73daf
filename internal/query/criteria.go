// Package query turns request parameters into validated list criteria and
// compiles them into PostgreSQL statements. The same contract serves every
// listable resource: filters narrow the rows, a sort orders them, and a page
// selects a window while the total still counts every matching row.
package query

import "errors"

// ErrInvalid marks malformed filter, sort or pagination input. Callers
// surface it as a validation failure before any statement runs.
var ErrInvalid = errors.New("invalid query")

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

type Sort struct {
	Field string
	Order Order
}

type PageKind string

const (
	PageOffset PageKind = "offset"
	PageCursor PageKind = "cursor"
)

// Pagination is a tagged variant: offset pages use Skip/Take, cursor pages
// use After/Limit.
type Pagination struct {
	Kind  PageKind
	Skip  int
	Take  int
	After *int64
	Limit int
}

func Offset(skip, take int) Pagination {
	return Pagination{Kind: PageOffset, Skip: skip, Take: take}
}

func Cursor(after *int64, limit int) Pagination {
	return Pagination{Kind: PageCursor, After: after, Limit: limit}
}

// Size is the maximum number of items a page can hold.
func (p Pagination) Size() int {
	if p.Kind == PageCursor {
		return p.Limit
	}
	return p.Take
}

type Match int

const (
	// Contains is a case-insensitive substring match.
	Contains Match = iota
	Equals
	AtLeast
	AtMost
	Before
)

type Condition struct {
	Field string
	Match Match
	Value any
}

type Criteria struct {
	Conditions []Condition
	Sort       *Sort
	Page       Pagination
}

// Where returns a copy of c additionally scoped to field = value.
func (c Criteria) Where(field string, value any) Criteria {
	conds := make([]Condition, 0, len(c.Conditions)+1)
	conds = append(conds, c.Conditions...)
	c.Conditions = append(conds, Condition{Field: field, Match: Equals, Value: value})
	return c
}

// Result is one window of items plus the count of all matching rows.
type Result[T any] struct {
	Items []T
	Total int64
}
