// Package history stores every completed translation in a SQL database.
// SQLite is the default; MySQL can be used for a shared history.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/vaani/internal/lexicon"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Config selects the database. For sqlite3 DSN is a file path, for mysql
// a go-sql-driver DSN such as "user:pass@tcp(host:3306)/vaani".
type Config struct {
	Driver string
	DSN    string
}

// Record is one translation
type Record struct {
	ID        int64     `db:"id"`
	Direction string    `db:"direction"`
	Source    string    `db:"source_text"`
	Target    string    `db:"target_text"`
	Engine    string    `db:"engine"`
	AudioFile string    `db:"audio_file"`
	CreatedAt time.Time `db:"created_at"`
}

// Dir parses the stored direction
func (r Record) Dir() (lexicon.Direction, error) {
	return lexicon.ParseDirection(r.Direction)
}

// Store persists records
type Store struct {
	db *sqlx.DB
}

// Open connects to the configured database. The schema is not touched;
// call Migrate before first use.
func Open(cfg Config) (*Store, error) {
	var dsn string
	switch cfg.Driver {
	case DriverSQLite, "":
		cfg.Driver = DriverSQLite
		if cfg.DSN == "" {
			return nil, fmt.Errorf("history database path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
		dsn = cfg.DSN + "?_busy_timeout=5000"
	case DriverMySQL:
		mysqlCfg, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse mysql DSN: %w", err)
		}
		mysqlCfg.ParseTime = true
		if mysqlCfg.Params == nil {
			mysqlCfg.Params = map[string]string{}
		}
		mysqlCfg.Params["charset"] = "utf8mb4"
		dsn = mysqlCfg.FormatDSN()
	default:
		return nil, fmt.Errorf("unsupported history driver: %s", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// go-sqlite3 serialises writes; one connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	return New(db), nil
}

// New wraps an open database handle
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var schemas = map[string]string{
	DriverSQLite: `CREATE TABLE IF NOT EXISTS translations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		direction TEXT NOT NULL,
		source_text TEXT NOT NULL,
		target_text TEXT NOT NULL,
		engine TEXT NOT NULL DEFAULT '',
		audio_file TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	DriverMySQL: `CREATE TABLE IF NOT EXISTS translations (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		direction VARCHAR(8) NOT NULL,
		source_text TEXT NOT NULL,
		target_text TEXT NOT NULL,
		engine VARCHAR(64) NOT NULL DEFAULT '',
		audio_file VARCHAR(1024) NOT NULL DEFAULT '',
		created_at DATETIME(3) NOT NULL
	) DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the translations table if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	schema, ok := schemas[s.db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %s", s.db.DriverName())
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create translations table: %w", err)
	}
	return nil
}

// Add inserts rec and returns its ID. A zero CreatedAt is set to now.
func (s *Store) Add(ctx context.Context, rec *Record) (int64, error) {
	if rec.Direction == "" {
		return 0, fmt.Errorf("record has no direction")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO translations (direction, source_text, target_text, engine, audio_file, created_at)
		VALUES (:direction, :source_text, :target_text, :engine, :audio_file, :created_at)`,
		rec)
	if err != nil {
		return 0, fmt.Errorf("insert translation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	rec.ID = id
	return id, nil
}

const selectColumns = `SELECT id, direction, source_text, target_text, engine, audio_file, created_at FROM translations`

// Recent returns up to limit records, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	var records []Record
	if err := s.db.SelectContext(ctx, &records, selectColumns+` ORDER BY id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("load recent translations: %w", err)
	}
	return records, nil
}

// likeEscaper makes LIKE wildcards in a search term literal. '!' is used
// because a backslash escape is parsed differently by MySQL and SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search returns up to limit records whose source or target contains term
func (s *Store) Search(ctx context.Context, term string, limit int) ([]Record, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	var records []Record
	if err := s.db.SelectContext(ctx, &records,
		selectColumns+` WHERE source_text LIKE ? ESCAPE '!' OR target_text LIKE ? ESCAPE '!' ORDER BY id DESC LIMIT ?`,
		pattern, pattern, limit); err != nil {
		return nil, fmt.Errorf("search translations: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM translations`); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

// Clear deletes all records and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translations`)
	if err != nil {
		return 0, fmt.Errorf("clear translations: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
