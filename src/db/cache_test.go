package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGetClear(t *testing.T) {
	InitCache()
	t.Cleanup(func() { Cache = nil })

	SetAccountCache("accounts:1:1:10", "account-page")
	SetCategoryCache("categories:1:1:10", "category-page")
	SetTransactionCache("transactions:1:1:10", "transaction-page")
	Cache.Wait()

	v, ok := GetCache("accounts:1:1:10")
	require.True(t, ok)
	assert.Equal(t, "account-page", v)

	ClearAccountCaches()
	Cache.Wait()

	_, ok = GetCache("accounts:1:1:10")
	assert.False(t, ok)

	// Other entities are untouched.
	_, ok = GetCache("categories:1:1:10")
	assert.True(t, ok)
	_, ok = GetCache("transactions:1:1:10")
	assert.True(t, ok)
}

func TestCacheClearDropsAllTrackedKeys(t *testing.T) {
	InitCache()
	t.Cleanup(func() { Cache = nil })

	SetTransactionCache("transactions:1:1:10", 1)
	SetTransactionCache("transactions:1:2:10", 2)
	SetTransactionCache("transactions:2:1:10", 3)
	Cache.Wait()

	ClearTransactionCaches()
	Cache.Wait()

	for _, key := range []string{"transactions:1:1:10", "transactions:1:2:10", "transactions:2:1:10"} {
		_, ok := GetCache(key)
		assert.False(t, ok, key)
	}
}

func TestCacheNilSafe(t *testing.T) {
	Cache = nil

	_, ok := GetCache("anything")
	assert.False(t, ok)

	// None of these should panic without an initialized cache.
	SetAccountCache("k", 1)
	SetCategoryCache("k", 1)
	SetTransactionCache("k", 1)
	ClearAccountCaches()
	ClearCategoryCaches()
	ClearTransactionCaches()
}
