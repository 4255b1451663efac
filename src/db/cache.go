package db

import (
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cached list/fetch results are tracked per entity so a write to one entity
// type can drop every cached read that may now be stale.
var (
	Cache *ristretto.Cache

	accountKeys     = newKeySet()
	categoryKeys    = newKeySet()
	transactionKeys = newKeySet()
)

type keySet struct {
	sync.Mutex
	m map[string]struct{}
}

func newKeySet() *keySet {
	return &keySet{m: make(map[string]struct{})}
}

func (s *keySet) add(key string) {
	s.Lock()
	s.m[key] = struct{}{}
	s.Unlock()
}

func (s *keySet) clear() {
	s.Lock()
	for key := range s.m {
		Cache.Del(key)
	}
	s.m = make(map[string]struct{})
	s.Unlock()
}

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// GetCache is a no-op miss when the cache has not been initialized, so the
// sql layer works without InitCache (e.g. in tests).
func GetCache(key string) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(key)
}

func SetAccountCache(key string, value interface{}) {
	if Cache == nil {
		return
	}
	accountKeys.add(key)
	Cache.Set(key, value, 1)
}

func SetCategoryCache(key string, value interface{}) {
	if Cache == nil {
		return
	}
	categoryKeys.add(key)
	Cache.Set(key, value, 1)
}

func SetTransactionCache(key string, value interface{}) {
	if Cache == nil {
		return
	}
	transactionKeys.add(key)
	Cache.Set(key, value, 1)
}

func ClearAccountCaches() {
	if Cache == nil {
		return
	}
	accountKeys.clear()
}

func ClearCategoryCaches() {
	if Cache == nil {
		return
	}
	categoryKeys.clear()
}

func ClearTransactionCaches() {
	if Cache == nil {
		return
	}
	transactionKeys.clear()
}
