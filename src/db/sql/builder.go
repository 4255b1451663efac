package db

import (
	"fmt"
	"strings"
	"time"
)

// whereClause renders accumulated conditions, or "" when there are none.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// updateBuilder maps only-present patch fields to parameterized SET
// fragments. Absent (nil) fields never appear in the statement, so the
// stored values stay untouched.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) setString(column string, value *string) {
	if value != nil {
		b.set(column, *value)
	}
}

func (b *updateBuilder) setBool(column string, value *bool) {
	if value != nil {
		b.set(column, *value)
	}
}

func (b *updateBuilder) setFloat(column string, value *float64) {
	if value != nil {
		b.set(column, *value)
	}
}

func (b *updateBuilder) setInt(column string, value *int64) {
	if value != nil {
		b.set(column, *value)
	}
}

func (b *updateBuilder) setTime(column string, value *time.Time) {
	if value != nil {
		b.set(column, *value)
	}
}

// raw adds a SET fragment with no bound parameter, e.g. "update_date = NOW()".
func (b *updateBuilder) raw(fragment string) {
	b.sets = append(b.sets, fragment)
}

// addArg binds a non-SET parameter (for the WHERE clause) and returns its
// placeholder number.
func (b *updateBuilder) addArg(value interface{}) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *updateBuilder) setClause() string {
	return "SET " + strings.Join(b.sets, ", ")
}
