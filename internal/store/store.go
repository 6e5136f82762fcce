package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mmcdole/pokedex/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPokemon = []byte("pokemon")
	bucketInfo    = []byte("info")
)

const (
	pagePrefix         = "page:"
	defaultMemoryItems = 256
)

var _ domain.Store = (*CatalogStore)(nil)

// CatalogStore implements domain.Store using BoltDB with an LRU of encoded
// values in front of it.
type CatalogStore struct {
	db *bolt.DB

	// Hot-path reads (promoted on access). Keys are "<bucket>:<key>".
	cache *lru.Cache[string, []byte]
}

// NewCatalogStore opens (or creates) the cache database under dir.
// An empty dir gives a memory-only store.
func NewCatalogStore(dir string, memoryEntries int) (*CatalogStore, error) {
	if memoryEntries <= 0 {
		memoryEntries = defaultMemoryItems
	}
	cache, err := lru.New[string, []byte](memoryEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	if dir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: cache}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "pokedex.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPokemon, bucketInfo} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: cache}, nil
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	if data, ok := s.cache.Get(cacheKey); ok {
		return json.Unmarshal(data, dest) == nil
	}

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.cache.Add(cacheKey, data)

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.cache.Add(string(bucket)+":"+key, data)

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// keys returns every key under prefix in bucket, in byte order
func (s *CatalogStore) keys(bucket []byte, prefix string) []string {
	if s.db == nil {
		// Memory-only mode: the LRU is the whole store
		var out []string
		full := string(bucket) + ":" + prefix
		for _, k := range s.cache.Keys() {
			if strings.HasPrefix(k, full) {
				out = append(out, strings.TrimPrefix(k, string(bucket)+":"))
			}
		}
		slices.Sort(out)
		return out
	}

	var out []string
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			out = append(out, string(k))
		}
		return nil
	})
	return out
}

// === Pages (key: page:{%06d} so byte order is page order) ===

func pageKey(page int) string {
	return fmt.Sprintf("%s%06d", pagePrefix, page)
}

func parsePageKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, pagePrefix))
	return n, err == nil
}

func (s *CatalogStore) GetPage(page int) ([]domain.Pokemon, bool) {
	var items []domain.Pokemon
	ok := s.get(bucketPokemon, pageKey(page), &items)
	return items, ok
}

func (s *CatalogStore) SavePage(page int, items []domain.Pokemon) error {
	return s.set(bucketPokemon, pageKey(page), items)
}

// All returns every cached entry in page order
func (s *CatalogStore) All() []domain.Pokemon {
	var all []domain.Pokemon
	for _, key := range s.keys(bucketPokemon, pagePrefix) {
		n, ok := parsePageKey(key)
		if !ok {
			continue
		}
		if items, ok := s.GetPage(n); ok {
			all = append(all, items...)
		}
	}
	return all
}

// === Detail records ===

func (s *CatalogStore) GetInfo(name string) (*domain.PokemonInfo, bool) {
	var info domain.PokemonInfo
	if !s.get(bucketInfo, name, &info) {
		return nil, false
	}
	return &info, true
}

func (s *CatalogStore) SaveInfo(info *domain.PokemonInfo) error {
	if info == nil {
		return fmt.Errorf("nil info")
	}
	return s.set(bucketInfo, info.Name, info)
}

// === Invalidation ===

func (s *CatalogStore) InvalidateAll() {
	s.cache.Purge()

	if s.db == nil {
		return
	}

	// Drop and recreate every bucket
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPokemon, bucketInfo} {
			if tx.Bucket(bucket) != nil {
				if err := tx.DeleteBucket(bucket); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
