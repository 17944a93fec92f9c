package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS contacts (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	job_title     TEXT NOT NULL DEFAULT '',
	source_url    TEXT NOT NULL,
	name_present  INTEGER,
	phone_present INTEGER,
	title_present INTEGER,
	status        TEXT NOT NULL DEFAULT 'not_processed',
	error         TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_identity ON contacts(first_name, last_name, source_url);
CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertRecords(ctx context.Context, recs []model.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin insert")
	}
	defer tx.Rollback()

	inserted := 0
	now := time.Now().UTC()
	for _, rec := range recs {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO contacts (id, first_name, last_name, phone, job_title, source_url, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.FirstName, rec.LastName, rec.Phone, rec.JobTitle, rec.SourceURL,
			string(model.StatusNotProcessed), now, now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert record %s", rec.ID)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: rows affected")
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit insert")
	}
	return inserted, nil
}

func (s *SQLiteStore) NextUnprocessed(ctx context.Context) (*model.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, phone, job_title, source_url,
		        name_present, phone_present, title_present, status, error, created_at, updated_at
		 FROM contacts WHERE status = ? ORDER BY created_at ASC, id ASC LIMIT 1`,
		string(model.StatusNotProcessed),
	)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: next unprocessed")
	}
	return rec, nil
}

func (s *SQLiteStore) SetStatus(ctx context.Context, id string, status model.RecordStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set status %s", id)
	}
	return checkRowsAffected(res, "record", id)
}

func (s *SQLiteStore) SaveResult(ctx context.Context, id string, result *model.VerificationResult) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts
		 SET name_present = ?, phone_present = ?, title_present = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		result.NamePresent, result.PhonePresent, result.TitlePresent,
		string(model.StatusProcessed), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save result %s", id)
	}
	return checkRowsAffected(res, "record", id)
}

func (s *SQLiteStore) SetError(ctx context.Context, id string, msg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET error = ?, status = ?, updated_at = ? WHERE id = ?`,
		msg, string(model.StatusError), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set error %s", id)
	}
	return checkRowsAffected(res, "record", id)
}

func (s *SQLiteStore) ResetProcessing(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET status = ?, updated_at = ? WHERE status = ?`,
		string(model.StatusNotProcessed), time.Now().UTC(), string(model.StatusProcessing),
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: reset processing")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: rows affected")
	}
	return int(n), nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error) {
	query := `SELECT id, first_name, last_name, phone, job_title, source_url,
	                 name_present, phone_present, title_present, status, error, created_at, updated_at
	          FROM contacts WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// OFFSET is only valid after a LIMIT clause; -1 means no cap.
		query += ` LIMIT -1`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var recs []model.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func (s *SQLiteStore) CountByStatus(ctx context.Context) (map[model.RecordStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM contacts GROUP BY status`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count by status")
	}
	defer rows.Close()

	counts := make(map[model.RecordStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan count")
		}
		counts[model.RecordStatus(status)] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: iterate counts")
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.Record, error) {
	var rec model.Record
	var namePresent, phonePresent, titlePresent sql.NullBool
	var errMsg string
	var status string

	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.Phone, &rec.JobTitle, &rec.SourceURL,
		&namePresent, &phonePresent, &titlePresent, &status, &errMsg,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = model.RecordStatus(status)
	if namePresent.Valid || errMsg != "" {
		rec.Result = &model.VerificationResult{
			NamePresent:  namePresent.Bool,
			PhonePresent: phonePresent.Bool,
			TitlePresent: titlePresent.Bool,
			Error:        errMsg,
		}
	}
	return &rec, nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", entity, id)
	}
	return nil
}
