package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// boltStore is the on-disk backing for the TTL cache: one bucket per
// namespace, entries stored as JSON.
type boltStore struct {
	db *bolt.DB
}

var persistedNamespaces = []Namespace{NamespaceBpm, NamespaceLyrics, NamespaceTracks}

func openBoltStore(dbPath string) (*boltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %v", err)
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, ns := range persistedNamespaces {
			if _, err := tx.CreateBucketIfNotExists([]byte(ns)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache buckets: %v", err)
	}

	return &boltStore{db: db}, nil
}

// loadAll reads every persisted entry into the in-memory cache, dropping
// entries that expired while the process was down. Returns the number loaded.
func (s *boltStore) loadAll(c *Cache) (int, error) {
	now := c.now().UnixNano()
	count := 0

	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, ns := range persistedNamespaces {
			b := tx.Bucket([]byte(ns))
			if b == nil {
				continue
			}

			var stale [][]byte
			err := b.ForEach(func(k, v []byte) error {
				var entry Entry
				if err := json.Unmarshal(v, &entry); err != nil {
					stale = append(stale, append([]byte(nil), k...))
					return nil
				}
				if now > entry.ExpiresAt {
					stale = append(stale, append([]byte(nil), k...))
					return nil
				}

				c.mu.Lock()
				c.data[ns][string(k)] = entry
				c.mu.Unlock()
				count++
				return nil
			})
			if err != nil {
				return err
			}

			for _, k := range stale {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})

	return count, err
}

func (s *boltStore) save(ns Namespace, key string, entry Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(ns))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", ns)
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (s *boltStore) remove(ns Namespace, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(ns))
		if b == nil {
			return fmt.Errorf("bucket not found: %s", ns)
		}
		return b.Delete([]byte(key))
	})
}

// clear drops one namespace's bucket, or all of them when ns is empty.
func (s *boltStore) clear(ns Namespace) error {
	targets := persistedNamespaces
	if ns != "" {
		targets = []Namespace{ns}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, target := range targets {
			if err := tx.DeleteBucket([]byte(target)); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			if _, err := tx.CreateBucket([]byte(target)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStore) close() error {
	return s.db.Close()
}
