package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/kotakitamaru/FinanceManager-v2/src/db"
)

// Account balances are signed by the linked category's is_income flag, so a
// category update must drop cached account pages, not just category pages.
func TestCategoryUpdateClearsAccountCaches(t *testing.T) {
	cache.InitCache()
	t.Cleanup(func() { cache.Cache = nil })

	cache.SetAccountCache("accounts:list:1:1:10", "balances")
	cache.SetCategoryCache("categories:list:1:1:10:-", "categories")
	cache.SetTransactionCache("transactions:list:1:1:10", "transactions")
	cache.Cache.Wait()

	_, ok := cache.GetCache("accounts:list:1:1:10")
	require.True(t, ok)

	clearCategoryDerivedCaches()
	cache.Cache.Wait()

	_, ok = cache.GetCache("accounts:list:1:1:10")
	assert.False(t, ok, "account page must not survive a category change")
	_, ok = cache.GetCache("categories:list:1:1:10:-")
	assert.False(t, ok)

	// Transaction pages carry no derived category data and stay put.
	_, ok = cache.GetCache("transactions:list:1:1:10")
	assert.True(t, ok)
}
