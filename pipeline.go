package main

import (
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// journalEntry records one submission attempt, whatever its outcome.
type journalEntry struct {
	At          time.Time `json:"at"`
	Email       string    `json:"email"`
	Affiliation string    `json:"affiliation"`
	EventID     string    `json:"eventId"`
	Outcome     string    `json:"outcome"`
	Detail      string    `json:"detail,omitempty"`
}

// A channel that buffers journal entries awaiting the local store write
var journalEntries = make(chan journalEntry, 64)

// journal queues an entry without ever blocking a submission. When the
// buffer is full the entry is dropped.
func journal(entry journalEntry) {
	select {
	case journalEntries <- entry:
	default:
		log.Warn().Str("email", entry.Email).Msg("Journal Buffer Full, Entry Dropped")
	}
}

// startJournalWriter drains the journal channel into the local store until
// the channel is closed.
func startJournalWriter(db *badger.DB) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range journalEntries {
			if err := writeJournal(db, entry); err != nil {
				log.Error().Err(err).Msg("Failed to Write Journal Entry")
			}
		}
	}()
	return done
}
