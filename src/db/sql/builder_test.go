package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	assert.Equal(t, "", whereClause(nil))
	assert.Equal(t, "WHERE a = $1", whereClause([]string{"a = $1"}))
	assert.Equal(t, "WHERE a = $1 AND b = $2", whereClause([]string{"a = $1", "b = $2"}))
}

func TestUpdateBuilderSkipsAbsentFields(t *testing.T) {
	title := "New"
	b := &updateBuilder{}
	b.setString("title", &title)
	b.setString("icon", nil)
	b.setString("color", nil)
	b.raw("update_date = NOW()")

	assert.Equal(t, "SET title = $1, update_date = NOW()", b.setClause())
	assert.Equal(t, []interface{}{"New"}, b.args)
}

func TestUpdateBuilderAllFieldTypes(t *testing.T) {
	title := "Groceries"
	income := false
	amount := 12.5
	category := int64(3)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	b := &updateBuilder{}
	b.setString("title", &title)
	b.setBool("is_income", &income)
	b.setFloat("amount", &amount)
	b.setInt("category_id", &category)
	b.setTime("date", &date)

	assert.Equal(t, "SET title = $1, is_income = $2, amount = $3, category_id = $4, date = $5", b.setClause())
	assert.Equal(t, []interface{}{"Groceries", false, 12.5, int64(3), date}, b.args)
}

func TestUpdateBuilderAddArgAfterSets(t *testing.T) {
	note := "lunch"
	b := &updateBuilder{}
	b.setString("note", &note)
	b.raw("update_date = NOW()")

	n := b.addArg(int64(9))

	assert.Equal(t, 2, n)
	assert.Equal(t, []interface{}{"lunch", int64(9)}, b.args)
}
