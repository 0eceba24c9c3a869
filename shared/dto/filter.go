package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Condition renders a WHERE fragment with named sqlx arguments.
type Condition interface {
	GetWhereClause() (string, map[string]any)
}

// Filter compares one column. ArgName defaults to Field and must be unique within a group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string
	Table    string
}

func Eq(table, field string, value any) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorEq, Table: table}
}

func IsNull(table, field string) Filter {
	return Filter{Field: field, Operator: FilterIsNull, Table: table}
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	argName := f.ArgName
	if argName == "" {
		argName = f.Field
	}

	compare := func(op string) (string, map[string]any) {
		args[argName] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, argName), args
	}

	switch f.Operator {
	case FilterOperatorEq:
		return compare("=")
	case FilterOperatorLessEq:
		return compare("<=")
	case FilterOperatorGreaterEq:
		return compare(">=")
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
			return compare("=")
		}

		named := make([]string, val.Len())
		for idx := range val.Len() {
			name := fmt.Sprintf("%s_%d", argName, idx)
			args[name] = val.Index(idx).Interface()
			named[idx] = ":" + name
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(named, ", ")), args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// FilterGroup joins conditions with Operator. An empty group renders nothing.
type FilterGroup struct {
	Filters  []Condition
	Operator string
}

func And(conditions ...Condition) FilterGroup {
	return FilterGroup{Filters: conditions, Operator: FilterGroupOperatorAnd}
}

func Or(conditions ...Condition) FilterGroup {
	return FilterGroup{Filters: conditions, Operator: FilterGroupOperatorOr}
}

func (f FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, condition := range f.Filters {
		where, arg := condition.GetWhereClause()
		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(clauses, " "+operator+" ") + ")", args
}
