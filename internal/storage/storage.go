package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
)

const gamePrefix = "game:"

// ErrNotFound is returned when no game exists under the requested id.
var ErrNotFound = errors.New("game not found")

// GameRecord is one stored game: metadata plus the compressed move stream.
type GameRecord struct {
	ID       string    `json:"id"`
	White    string    `json:"white"`
	Black    string    `json:"black"`
	Event    string    `json:"event"`
	Date     string    `json:"date"`
	Result   string    `json:"result"`
	PlyCount int       `json:"ply_count"`
	Moves    []byte    `json:"moves"`
	AddedAt  time.Time `json:"added_at"`
}

// Stats summarises the store contents.
type Stats struct {
	Games       int
	Plies       int
	StoredBytes int64
}

// String renders the stats with humanized byte counts. The movetext
// baseline assumes five bytes per ply, the size of coordinate text moves.
func (st Stats) String() string {
	if st.Games == 0 {
		return "empty store"
	}
	baseline := int64(st.Plies) * 5
	return fmt.Sprintf("%d games, %d plies, %s stored (%s as movetext)",
		st.Games, st.Plies,
		humanize.Bytes(uint64(st.StoredBytes)),
		humanize.Bytes(uint64(baseline)))
}

// Store wraps BadgerDB for persistent game storage.
type Store struct {
	db *badger.DB
}

// Open opens the store in dir, or in the platform data directory when dir
// is empty.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GameID derives the content-addressed id of a compressed move stream.
func GameID(moves []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(moves))
}

// Put stores a game. An empty ID is derived from the compressed stream, so
// identical games deduplicate naturally. Returns the id.
func (s *Store) Put(rec *GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = GameID(rec.Moves)
	}
	if rec.AddedAt.IsZero() {
		rec.AddedAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gamePrefix+rec.ID), data)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Get loads a game by id.
func (s *Store) Get(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a game by id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gamePrefix + id))
	})
}

// List returns every stored game, metadata and moves included.
func (s *Store) List() ([]*GameRecord, error) {
	var recs []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Stats summarises the store.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	recs, err := s.List()
	if err != nil {
		return st, err
	}
	for _, rec := range recs {
		st.Games++
		st.Plies += rec.PlyCount
		st.StoredBytes += int64(len(rec.Moves))
	}
	return st, nil
}
