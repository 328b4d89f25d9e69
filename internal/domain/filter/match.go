package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Match evaluates items against a column → value map (see entity.Fields).
// Unknown columns never match. Used by the in-memory store; the SQL store
// translates the same items to WHERE clauses.
func Match(fields map[string]any, items []Item) bool {
	for _, it := range items {
		v, ok := fields[it.Field]
		if !ok {
			return false
		}
		if !matchOne(deref(v), it) {
			return false
		}
	}
	return true
}

func matchOne(v any, it Item) bool {
	switch it.Operator {
	case Equal:
		return equal(v, it.Value)
	case NotEqual:
		return !equal(v, it.Value)
	case InList:
		rv := reflect.ValueOf(it.Value)
		if rv.Kind() != reflect.Slice {
			return equal(v, it.Value)
		}
		for i := 0; i < rv.Len(); i++ {
			if equal(v, rv.Index(i).Interface()) {
				return true
			}
		}
		return false
	case Contains:
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(fmt.Sprint(it.Value)))
	case IsNull:
		return v == nil
	case IsNotNull:
		return v != nil
	case LessOrEqual:
		c, ok := compare(v, it.Value)
		return ok && c <= 0
	case GreaterOrEqual:
		c, ok := compare(v, it.Value)
		return ok && c >= 0
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return v
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(deref(b))
}

// compare orders numbers numerically and everything else by string form,
// which is chronological for ISO-8601 dates.
func compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb), true
		}
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)), true
}

func toFloat(v any) (float64, bool) {
	if d, ok := v.(interface{ InexactFloat64() float64 }); ok {
		return d.InexactFloat64(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Compare orders two column values the way LessOrEqual/GreaterOrEqual do.
// Nil sorts first.
func Compare(a, b any) int {
	a, b = deref(a), deref(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	c, _ := compare(a, b)
	return c
}
