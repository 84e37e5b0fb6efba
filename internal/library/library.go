// Package library manages the sqlite track database: scanned music
// files, playlists and the persisted play queue.
package library

import (
	"database/sql"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "ytune"
	dbFileName = "library.db"
)

// Library wraps the track database.
type Library struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (and if needed creates) the library database at the
// default XDG data location.
func Open(logger *log.Logger) (*Library, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, logger)
}

// OpenPath opens the library database at the given path.
func OpenPath(path string, logger *log.Logger) (*Library, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{db: db, logger: logger}, nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}
