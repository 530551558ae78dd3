package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ficha-generator/models"
)

// PostgresStore persists the ficha generation history to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	st := &PostgresStore{db: db}
	if err := st.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return st, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fichas (
			id              UUID        PRIMARY KEY,
			item_code       TEXT        NOT NULL DEFAULT '',
			title           TEXT        NOT NULL,
			formatted_price TEXT        NOT NULL DEFAULT '',
			source_url      TEXT        NOT NULL DEFAULT '',
			message         TEXT        NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_fichas_created_at ON fichas(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_fichas_item_code  ON fichas(item_code);
	`)
	return err
}

// Insert stores one generated ficha. A zero ID gets assigned here.
func (s *PostgresStore) Insert(rec *models.FichaRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := s.db.Exec(`
		INSERT INTO fichas (id, item_code, title, formatted_price, source_url, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.ItemCode, rec.Title, rec.FormattedPrice, rec.SourceURL, rec.Message)
	if err != nil {
		return fmt.Errorf("postgres: insert ficha: %w", err)
	}
	return nil
}

// Recent returns the newest generations, most recent first.
func (s *PostgresStore) Recent(limit int) ([]*models.FichaRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, item_code, title, formatted_price, source_url, message, created_at
		FROM fichas
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: recent: %w", err)
	}
	defer rows.Close()

	var out []*models.FichaRecord
	for rows.Next() {
		rec := &models.FichaRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.ItemCode, &rec.Title, &rec.FormattedPrice,
			&rec.SourceURL, &rec.Message, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
