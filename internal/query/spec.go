package query

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"chem.app/api/common/id"
)

const (
	DefaultTake  = 100
	DefaultLimit = 10
	MaxPageSize  = 1000
)

type FilterKind int

const (
	// Text filters match case-insensitive substrings.
	Text FilterKind = iota
	// Enum filters match exactly and reject values outside Values.
	Enum
	// ID filters match exactly on a decimal snowflake ID.
	ID
	// DateFrom is an inclusive lower bound on a timestamp field.
	DateFrom
	// DateTo is an inclusive upper bound; a bare date covers the whole day.
	DateTo
)

type Filter struct {
	Param  string
	Field  string
	Kind   FilterKind
	Values []string
}

func (f Filter) field() string {
	if f.Field != "" {
		return f.Field
	}
	return f.Param
}

// Spec describes what a resource accepts: its filters, sortable fields,
// defaults and pagination mode.
type Spec struct {
	Filters     []Filter
	Sortable    []string
	DefaultSort *Sort
	// LenientSort ignores unknown sortBy values instead of rejecting them.
	LenientSort bool
	Paging      PageKind
	DefaultSize int
}

// Parse validates raw request parameters. Every failure wraps ErrInvalid.
func (s Spec) Parse(v url.Values) (Criteria, error) {
	var c Criteria

	lower := map[string]time.Time{}
	upper := map[string]Condition{}
	for _, f := range s.Filters {
		raw := strings.TrimSpace(v.Get(f.Param))
		if raw == "" {
			continue
		}
		cond, err := f.parse(raw)
		if err != nil {
			return Criteria{}, err
		}
		switch f.Kind {
		case DateFrom:
			lower[cond.Field] = cond.Value.(time.Time)
		case DateTo:
			upper[cond.Field] = cond
		}
		c.Conditions = append(c.Conditions, cond)
	}
	for field, from := range lower {
		if to, ok := upper[field]; ok && !to.admits(from) {
			return Criteria{}, fmt.Errorf("%w: startDate must not be after endDate", ErrInvalid)
		}
	}

	sort, err := s.parseSort(v)
	if err != nil {
		return Criteria{}, err
	}
	c.Sort = sort

	page, err := s.parsePage(v)
	if err != nil {
		return Criteria{}, err
	}
	c.Page = page

	return c, nil
}

// admits reports whether t satisfies an upper date bound. A date-only end
// bound is stored as an exclusive start of the following day.
func (c Condition) admits(t time.Time) bool {
	to := c.Value.(time.Time)
	if c.Match == Before {
		return t.Before(to)
	}
	return !t.After(to)
}

func (f Filter) parse(raw string) (Condition, error) {
	field := f.field()
	switch f.Kind {
	case Text:
		return Condition{Field: field, Match: Contains, Value: raw}, nil
	case Enum:
		if !slices.Contains(f.Values, raw) {
			return Condition{}, fmt.Errorf("%w: %s must be one of %s", ErrInvalid, f.Param, strings.Join(f.Values, ", "))
		}
		return Condition{Field: field, Match: Equals, Value: raw}, nil
	case ID:
		v, err := id.Parse(raw)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %s must be a valid id", ErrInvalid, f.Param)
		}
		return Condition{Field: field, Match: Equals, Value: v}, nil
	case DateFrom:
		t, _, err := ParseDate(raw)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %s is not a valid date", ErrInvalid, f.Param)
		}
		return Condition{Field: field, Match: AtLeast, Value: t}, nil
	case DateTo:
		t, dateOnly, err := ParseDate(raw)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: %s is not a valid date", ErrInvalid, f.Param)
		}
		if dateOnly {
			return Condition{Field: field, Match: Before, Value: t.AddDate(0, 0, 1)}, nil
		}
		return Condition{Field: field, Match: AtMost, Value: t}, nil
	default:
		return Condition{}, fmt.Errorf("%w: unsupported filter %s", ErrInvalid, f.Param)
	}
}

func (s Spec) parseSort(v url.Values) (*Sort, error) {
	sortBy := strings.TrimSpace(v.Get("sortBy"))
	rawOrder := strings.ToLower(strings.TrimSpace(v.Get("order")))

	var order Order
	switch rawOrder {
	case "":
	case string(Asc), string(Desc):
		order = Order(rawOrder)
	default:
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalid)
	}

	if sortBy != "" && slices.Contains(s.Sortable, sortBy) {
		if order == "" {
			order = Asc
		}
		return &Sort{Field: sortBy, Order: order}, nil
	}
	if sortBy != "" && !s.LenientSort {
		return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalid, sortBy)
	}

	if s.DefaultSort == nil {
		return nil, nil
	}
	def := *s.DefaultSort
	if order != "" {
		def.Order = order
	}
	return &def, nil
}

func (s Spec) parsePage(v url.Values) (Pagination, error) {
	size := s.DefaultSize
	if s.Paging == PageCursor {
		if size <= 0 {
			size = DefaultLimit
		}
		limit, err := intParam(v, "limit", size, 1)
		if err != nil {
			return Pagination{}, err
		}
		var after *int64
		if raw := strings.TrimSpace(v.Get("after")); raw != "" {
			a, err := id.Parse(raw)
			if err != nil {
				return Pagination{}, fmt.Errorf("%w: after must be a valid id", ErrInvalid)
			}
			after = &a
		}
		return Cursor(after, min(limit, MaxPageSize)), nil
	}

	if size <= 0 {
		size = DefaultTake
	}
	skip, err := intParam(v, "skip", 0, 0)
	if err != nil {
		return Pagination{}, err
	}
	take, err := intParam(v, "take", size, 1)
	if err != nil {
		return Pagination{}, err
	}
	return Offset(skip, min(take, MaxPageSize)), nil
}

func intParam(v url.Values, name string, fallback, minimum int) (int, error) {
	raw := strings.TrimSpace(v.Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minimum {
		return 0, fmt.Errorf("%w: %s must be an integer >= %d", ErrInvalid, name, minimum)
	}
	return n, nil
}

// ParseDate accepts RFC 3339 timestamps and YYYY-MM-DD dates. dateOnly
// reports whether the input carried no time of day.
func ParseDate(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, false, nil
	}
	t, err = time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
