package main

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	eventsCacheKey = "events:catalog"
	eventsCacheTTL = 10 * time.Minute
)

// openStore opens the local badger store. An empty path opens an in-memory
// store, used by tests and simulation runs.
func openStore(path string) (*badger.DB, error) {
	options := badger.DefaultOptions(path).WithLogger(badgerZerologLogger{})
	if path == "" {
		options = options.WithInMemory(true)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}
	return db, nil
}

// cachedEvents returns the locally cached event catalog, or nil when the
// cache is cold or unreadable.
func cachedEvents(db *badger.DB) []EventRecord {
	var events []EventRecord
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(eventsCacheKey))

		// Check if key was found
		if err == badger.ErrKeyNotFound {
			log.Debug().Str("key", eventsCacheKey).Msg("Event Cache Cold")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "failed to get event cache")
		}

		return item.Value(func(val []byte) error {
			err := json.Unmarshal(val, &events)
			return errors.Wrap(err, "failed to unmarshal cached events")
		})
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to Load Event Cache")
		return nil
	}
	return events
}

// cacheEvents stores the fetched catalog with a TTL so a flaky events
// endpoint does not blank the form between fetches.
func cacheEvents(db *badger.DB, events []EventRecord) {
	err := db.Update(func(txn *badger.Txn) error {
		marshalled, err := json.Marshal(events)
		if err != nil {
			return errors.Wrap(err, "failed to marshal events")
		}

		entry := badger.NewEntry([]byte(eventsCacheKey), marshalled).WithTTL(eventsCacheTTL)
		return txn.SetEntry(entry)
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to Save Event Cache")
	}
}

// writeJournal appends one submission attempt to the local journal. The
// journal is diagnostics only and is never read on the request path.
func writeJournal(db *badger.DB, entry journalEntry) error {
	key := fmt.Sprintf("journal:%s:%s", entry.At.UTC().Format(time.RFC3339Nano), entry.Email)

	return db.Update(func(txn *badger.Txn) error {
		marshalled, err := json.Marshal(entry)
		if err != nil {
			return errors.Wrap(err, "failed to marshal journal entry")
		}
		return txn.Set([]byte(key), marshalled)
	})
}
