package main

import (
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *badger.DB {
	t.Helper()
	db, err := openStore("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCacheEventsRoundTrip(t *testing.T) {
	db := testStore(t)

	assert.Nil(t, cachedEvents(db), "cold cache yields nil")

	events := []EventRecord{testEvent()}
	cacheEvents(db, events)

	cached := cachedEvents(db)
	assert.Equal(t, events, cached)
}

func TestWriteJournal(t *testing.T) {
	db := testStore(t)

	entry := journalEntry{
		At:          time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Email:       "x@univ.edu",
		Affiliation: "academic",
		EventID:     "WK1",
		Outcome:     "done",
	}
	require.NoError(t, writeJournal(db, entry))

	count := 0
	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = []byte("journal:")
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
