// Package catalog exports the assembled format registry to a SQLite
// database for ad-hoc inspection with ordinary SQL tooling. The signature
// file remains the build artifact; the catalog is a side output.
//
// Build modes:
//   - Default: pure Go modernc.org/sqlite
//   - -tags cgo_sqlite (CGO_ENABLED=1): mattn/go-sqlite3
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/digipres-tools/droidsig/core/pronom"
)

// DriverType identifies the underlying SQLite implementation, "purego" or
// "cgo".
func DriverType() string {
	return driverType
}

const schema = `
CREATE TABLE IF NOT EXISTS format (
	id             TEXT,
	name           TEXT,
	version        TEXT,
	puid           TEXT,
	mime           TEXT,
	classification TEXT
);
CREATE TABLE IF NOT EXISTS internal_signature (
	id        TEXT,
	format_id TEXT,
	name      TEXT
);
CREATE TABLE IF NOT EXISTS byte_sequence (
	id           TEXT,
	signature_id TEXT,
	reference    TEXT,
	min_offset   INTEGER,
	max_offset   INTEGER,
	endianness   TEXT,
	value        TEXT
);
CREATE TABLE IF NOT EXISTS external_signature (
	id        TEXT,
	format_id TEXT,
	signature TEXT,
	type      TEXT
);
CREATE TABLE IF NOT EXISTS priority (
	format_id         TEXT,
	has_priority_over TEXT
);
`

// Export writes the given format records to a SQLite database at path,
// replacing any rows from a previous export.
func Export(path string, formats []*pronom.Format) error {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create catalog schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}
	if err := export(tx, formats); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}
	return nil
}

func export(tx *sql.Tx, formats []*pronom.Format) error {
	for _, table := range []string{"format", "internal_signature", "byte_sequence", "external_signature", "priority"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}

	for _, format := range formats {
		if _, err := tx.Exec(
			`INSERT INTO format (id, name, version, puid, mime, classification) VALUES (?, ?, ?, ?, ?, ?)`,
			format.ID, format.Name, format.Version, format.PUID, format.MIME, format.Classification,
		); err != nil {
			return fmt.Errorf("insert format %s: %w", format.ID, err)
		}
		if err := exportSignatures(tx, format); err != nil {
			return err
		}
	}
	return nil
}

func exportSignatures(tx *sql.Tx, format *pronom.Format) error {
	for _, sig := range format.InternalSignatures {
		if _, err := tx.Exec(
			`INSERT INTO internal_signature (id, format_id, name) VALUES (?, ?, ?)`,
			sig.ID, format.ID, sig.Name,
		); err != nil {
			return fmt.Errorf("insert internal signature %s: %w", sig.ID, err)
		}
		for _, bs := range sig.ByteSequences {
			if _, err := tx.Exec(
				`INSERT INTO byte_sequence (id, signature_id, reference, min_offset, max_offset, endianness, value)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				bs.ID, sig.ID, string(bs.Anchor), nullableInt(bs.MinOffset), nullableInt(bs.MaxOffset), bs.Endianness, bs.Value,
			); err != nil {
				return fmt.Errorf("insert byte sequence %s: %w", bs.ID, err)
			}
		}
	}
	for _, ext := range format.ExternalSignatures {
		if _, err := tx.Exec(
			`INSERT INTO external_signature (id, format_id, signature, type) VALUES (?, ?, ?, ?)`,
			ext.ID, format.ID, ext.Signature, ext.Type,
		); err != nil {
			return fmt.Errorf("insert external signature %s: %w", ext.ID, err)
		}
	}
	for _, priority := range format.Priorities {
		if _, err := tx.Exec(
			`INSERT INTO priority (format_id, has_priority_over) VALUES (?, ?)`,
			format.ID, priority.ID,
		); err != nil {
			return fmt.Errorf("insert priority for format %s: %w", format.ID, err)
		}
	}
	return nil
}

// nullableInt maps an absent bound to NULL rather than zero.
func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
