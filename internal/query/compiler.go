// Package query compiles user-supplied conference filters into a
// declarative, safely-ordered query spec. The compiler performs no I/O; the
// resulting Spec is executed by the conference repository.
package query

import (
	"errors"
	"fmt"
	"strconv"
)

// Compilation errors.
var (
	// ErrInvalidFilter is returned for a field or operator outside the
	// whitelists.
	ErrInvalidFilter = errors.New("filter contains invalid field or operator")

	// ErrMultipleInequalityFields is returned when inequality comparisons
	// span more than one field. The store can only range-order by one
	// property at a time.
	ErrMultipleInequalityFields = errors.New("inequality filter is allowed on only one field")

	// ErrInvalidFilterValue is returned when a numeric field carries a value
	// that does not parse as an integer.
	ErrInvalidFilterValue = errors.New("filter value must be an integer")
)

// fields maps the external filter field names to entity properties.
var fields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "max_attendees",
}

// operators maps the external operator tokens to SQL comparators. Every
// operator except EQ belongs to the inequality class.
var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "<>",
}

// numericProperties are coerced from text to int before comparison.
var numericProperties = map[string]bool{
	"month":         true,
	"max_attendees": true,
}

// Filter is one raw user-supplied filter triple.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Condition is one compiled comparison against an entity property.
type Condition struct {
	Property   string
	Comparator string
	Value      any
}

// Spec is a compiled, declarative query: a conjunction of conditions plus a
// mandatory ordering. When an inequality condition is present the first
// order key is its property; name is always the final tie-break key.
type Spec struct {
	Conditions []Condition
	OrderBy    []string
}

// Compile validates and translates an ordered sequence of raw filters.
// At most one distinct field may carry an inequality comparison.
func Compile(filters []Filter) (*Spec, error) {
	spec := &Spec{Conditions: make([]Condition, 0, len(filters))}
	inequalityProperty := ""

	for _, f := range filters {
		property, ok := fields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: field %q", ErrInvalidFilter, f.Field)
		}
		comparator, ok := operators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, f.Operator)
		}

		if comparator != "=" {
			if inequalityProperty != "" && inequalityProperty != property {
				return nil, ErrMultipleInequalityFields
			}
			inequalityProperty = property
		}

		var value any = f.Value
		if numericProperties[property] {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q", ErrInvalidFilterValue, f.Field, f.Value)
			}
			value = n
		}

		spec.Conditions = append(spec.Conditions, Condition{
			Property:   property,
			Comparator: comparator,
			Value:      value,
		})
	}

	// The store requires the first sort key to match the inequality field.
	if inequalityProperty != "" {
		spec.OrderBy = []string{inequalityProperty + " ASC", "name ASC"}
	} else {
		spec.OrderBy = []string{"name ASC"}
	}
	return spec, nil
}
