package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionFilterOrderBy(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"defaults", "", "", "ORDER BY id DESC"},
		{"whitelisted field", "amount", "", "ORDER BY amount DESC"},
		{"explicit asc", "date", "ASC", "ORDER BY date ASC"},
		{"lowercase direction", "date", "asc", "ORDER BY date ASC"},
		{"unknown field falls back", "note; DROP TABLE transactions", "ASC", "ORDER BY id ASC"},
		{"unknown direction falls back", "amount", "sideways", "ORDER BY amount DESC"},
		{"create_date allowed", "create_date", "DESC", "ORDER BY create_date DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := TransactionFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
			assert.Equal(t, tt.want, f.orderBy())
		})
	}
}

func TestTransactionFilterConditions(t *testing.T) {
	categoryID := int64(3)
	accountID := int64(5)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("all filters with scope", func(t *testing.T) {
		f := TransactionFilter{CategoryID: &categoryID, AccountID: &accountID, StartDate: &start, EndDate: &end}
		conds, args := f.conditions(OwnedBy(42))

		assert.Equal(t, []string{
			"user_id = $1",
			"category_id = $2",
			"account_id = $3",
			"date >= $4",
			"date <= $5",
		}, conds)
		assert.Equal(t, []interface{}{int64(42), int64(3), int64(5), start, end}, args)
	})

	t.Run("no filters unscoped", func(t *testing.T) {
		conds, args := TransactionFilter{}.conditions(Unscoped())
		assert.Empty(t, conds)
		assert.Empty(t, args)
	})

	t.Run("single filter numbering", func(t *testing.T) {
		f := TransactionFilter{AccountID: &accountID}
		conds, args := f.conditions(Unscoped())
		assert.Equal(t, []string{"account_id = $1"}, conds)
		assert.Equal(t, []interface{}{int64(5)}, args)
	})
}

func TestTransactionFilterCacheKey(t *testing.T) {
	categoryID := int64(3)
	base := TransactionFilter{}
	withCategory := TransactionFilter{CategoryID: &categoryID}

	assert.NotEqual(t, base.cacheKey(OwnedBy(1), 1, 10), withCategory.cacheKey(OwnedBy(1), 1, 10))
	assert.NotEqual(t, base.cacheKey(OwnedBy(1), 1, 10), base.cacheKey(OwnedBy(2), 1, 10))
	assert.NotEqual(t, base.cacheKey(OwnedBy(1), 1, 10), base.cacheKey(OwnedBy(1), 2, 10))
	assert.Equal(t, base.cacheKey(OwnedBy(1), 1, 10), base.cacheKey(OwnedBy(1), 1, 10))
}
