package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Table maps criteria fields onto a PostgreSQL relation.
//
// Columns are the select expressions of one row; their output names must be
// unique and include "id". Fields maps filter fields to qualified columns
// usable in WHERE. Predicates maps equality filters to boolean expressions
// with a single %s for the bound value, and take precedence over Fields.
// Sorts maps sort fields to output column names.
type Table struct {
	From       string
	Columns    []string
	Fields     map[string]string
	Predicates map[string]string
	Sorts      map[string]string
}

type Statement struct {
	SQL  string
	Args []any
}

type argList struct {
	values []any
}

func (a *argList) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Select builds the windowed fetch. The inner query applies the filters and
// computes count(*) OVER () so every returned row carries the filtered total;
// the cursor, order and window are applied outside it and never reduce the
// count. The total is the last selected column.
func (t Table) Select(c Criteria) (Statement, error) {
	args := &argList{}

	where, err := t.where(c.Conditions, args)
	if err != nil {
		return Statement{}, err
	}

	sortCol, order, err := t.order(c.Sort)
	if err != nil {
		return Statement{}, err
	}
	if sortCol == "id" {
		// id is always the tie-break; sorting by it alone needs no extra key.
		sortCol = ""
	}
	dir := "ASC"
	cmp := ">"
	if order == Desc {
		dir = "DESC"
		cmp = "<"
	}

	var b strings.Builder
	b.WriteString("SELECT matched.* FROM (SELECT ")
	b.WriteString(strings.Join(t.Columns, ", "))
	b.WriteString(", count(*) OVER () AS total_count FROM ")
	b.WriteString(t.From)
	b.WriteString(where)
	b.WriteString(") matched")

	if c.Page.Kind == PageCursor && c.Page.After != nil {
		after := args.add(*c.Page.After)
		if sortCol == "" {
			fmt.Fprintf(&b, " WHERE matched.id %s %s", cmp, after)
		} else {
			fmt.Fprintf(&b, " WHERE (matched.%s, matched.id) %s (SELECT anchor.%s, anchor.id FROM (SELECT %s FROM %s) anchor WHERE anchor.id = %s)",
				sortCol, cmp, sortCol, strings.Join(t.Columns, ", "), t.From, after)
		}
	}

	b.WriteString(" ORDER BY ")
	if sortCol != "" {
		fmt.Fprintf(&b, "matched.%s %s, ", sortCol, dir)
	}
	fmt.Fprintf(&b, "matched.id %s", dir)

	switch c.Page.Kind {
	case PageCursor:
		fmt.Fprintf(&b, " LIMIT %s", args.add(c.Page.Limit))
	default:
		fmt.Fprintf(&b, " LIMIT %s OFFSET %s", args.add(c.Page.Take), args.add(c.Page.Skip))
	}

	return Statement{SQL: b.String(), Args: args.values}, nil
}

// Count builds a count over the same filters as Select, ignoring the window.
func (t Table) Count(c Criteria) (Statement, error) {
	args := &argList{}
	where, err := t.where(c.Conditions, args)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  "SELECT count(*) FROM " + t.From + where,
		Args: args.values,
	}, nil
}

func (t Table) where(conds []Condition, args *argList) (string, error) {
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conds))
	for _, cond := range conds {
		if pred, ok := t.Predicates[cond.Field]; ok && cond.Match == Equals {
			parts = append(parts, fmt.Sprintf(pred, args.add(cond.Value)))
			continue
		}
		col, ok := t.Fields[cond.Field]
		if !ok {
			return "", fmt.Errorf("%w: cannot filter by %q", ErrInvalid, cond.Field)
		}
		switch cond.Match {
		case Contains:
			s, _ := cond.Value.(string)
			parts = append(parts, fmt.Sprintf("%s ILIKE %s", col, args.add("%"+escapeLike(s)+"%")))
		case Equals:
			parts = append(parts, fmt.Sprintf("%s = %s", col, args.add(cond.Value)))
		case AtLeast:
			parts = append(parts, fmt.Sprintf("%s >= %s", col, args.add(cond.Value)))
		case AtMost:
			parts = append(parts, fmt.Sprintf("%s <= %s", col, args.add(cond.Value)))
		case Before:
			parts = append(parts, fmt.Sprintf("%s < %s", col, args.add(cond.Value)))
		default:
			return "", fmt.Errorf("%w: unsupported match on %q", ErrInvalid, cond.Field)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

func (t Table) order(s *Sort) (string, Order, error) {
	if s == nil {
		return "", Asc, nil
	}
	col, ok := t.Sorts[s.Field]
	if !ok {
		return "", "", fmt.Errorf("%w: cannot sort by %q", ErrInvalid, s.Field)
	}
	order := s.Order
	if order == "" {
		order = Asc
	}
	return col, order, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
