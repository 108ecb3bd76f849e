package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestStore(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	stream := []byte{0xC3, 0xC3, 0x5A, 0x24, 0x77, 0x15, 0x7D}

	t.Run("PutGet", func(t *testing.T) {
		id, err := store.Put(&GameRecord{
			White:    "Greco",
			Black:    "NN",
			Result:   "1-0",
			PlyCount: 7,
			Moves:    stream,
		})
		if err != nil {
			t.Fatalf("Put: %v", err)
		}
		if id != GameID(stream) {
			t.Errorf("id = %q, want content hash %q", id, GameID(stream))
		}

		rec, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if rec.White != "Greco" || rec.PlyCount != 7 {
			t.Errorf("metadata lost: %+v", rec)
		}
		if !bytes.Equal(rec.Moves, stream) {
			t.Errorf("moves = % x, want % x", rec.Moves, stream)
		}
		if rec.AddedAt.IsZero() {
			t.Error("AddedAt not stamped")
		}
	})

	t.Run("Dedup", func(t *testing.T) {
		// Same stream, same id: the store keeps one copy.
		id1, err := store.Put(&GameRecord{PlyCount: 7, Moves: stream})
		if err != nil {
			t.Fatal(err)
		}
		recs, err := store.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != 1 {
			t.Fatalf("%d records after duplicate Put, want 1", len(recs))
		}
		if recs[0].ID != id1 {
			t.Errorf("listed id %q, want %q", recs[0].ID, id1)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		st, err := store.Stats()
		if err != nil {
			t.Fatal(err)
		}
		if st.Games != 1 || st.StoredBytes != int64(len(stream)) {
			t.Errorf("stats = %+v", st)
		}
		if st.String() == "empty store" {
			t.Error("stats renders as empty")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		id := GameID(stream)
		if err := store.Delete(id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := store.Get(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after delete: %v, want ErrNotFound", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := store.Get("no such id"); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestEmptyStats(t *testing.T) {
	var st Stats
	if st.String() != "empty store" {
		t.Errorf("empty stats renders as %q", st.String())
	}
}
