package main

import (
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/voyager-lob/lobengine/lob"
)

// snapshotSchemaDDL mirrors the shape of the teacher's ResetSchema
// (lightsgoout-go-quantcup/db.go): drop-and-recreate a narrow table
// meant for a single replay run's output, not a durable store. The
// engine itself has no notion of this table; it is purely a
// cmd/lobreplay reporting convenience (spec.md §1 lists persistence as
// a core non-goal).
const snapshotSchemaDDL = `
	DROP TABLE IF EXISTS lob_level_snapshots;
	CREATE TABLE lob_level_snapshots (
		run_id    uuid,
		book_id   integer,
		side      text,
		price     bigint,
		qty       numeric
	)
`

// writeSnapshot bulk-inserts the final resting state of every book via
// pq.CopyIn, the same bulk-copy idiom the teacher uses for
// FillTestData/PersistDeals.
func writeSnapshot(dsn string, runID uuid.UUID, m *lob.Manager) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(snapshotSchemaDDL); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("lob_level_snapshots", "run_id", "book_id", "side", "price", "qty"))
	if err != nil {
		return err
	}

	rows := 0
	for bookID, book := range m.Books() {
		for _, lvl := range book.BidLevels() {
			if _, err := stmt.Exec(runID, int32(bookID), "bid", int64(lvl.Price.Abs()), lvl.Qty.String()); err != nil {
				return err
			}
			rows++
		}
		for _, lvl := range book.AskLevels() {
			if _, err := stmt.Exec(runID, int32(bookID), "ask", int64(lvl.Price.Abs()), lvl.Qty.String()); err != nil {
				return err
			}
			rows++
		}
	}

	if _, err := stmt.Exec(); err != nil {
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("lobreplay: wrote %d level rows for run %s", rows, runID)
	return nil
}
