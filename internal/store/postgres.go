package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

// Pool abstracts the subset of pgxpool.Pool the store needs, so tests can
// substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 4
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS contacts (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	job_title     TEXT NOT NULL DEFAULT '',
	source_url    TEXT NOT NULL,
	name_present  BOOLEAN,
	phone_present BOOLEAN,
	title_present BOOLEAN,
	status        TEXT NOT NULL DEFAULT 'not_processed',
	error         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_identity ON contacts(first_name, last_name, source_url);
CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) InsertRecords(ctx context.Context, recs []model.Record) (int, error) {
	inserted := 0
	now := time.Now().UTC()
	for _, rec := range recs {
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO contacts (id, first_name, last_name, phone, job_title, source_url, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (first_name, last_name, source_url) DO NOTHING`,
			rec.ID, rec.FirstName, rec.LastName, rec.Phone, rec.JobTitle, rec.SourceURL,
			string(model.StatusNotProcessed), now, now,
		)
		if err != nil {
			return inserted, eris.Wrapf(err, "postgres: insert record %s", rec.ID)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (s *PostgresStore) NextUnprocessed(ctx context.Context) (*model.Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, phone, job_title, source_url,
		        name_present, phone_present, title_present, status, error, created_at, updated_at
		 FROM contacts WHERE status = $1 ORDER BY created_at ASC, id ASC LIMIT 1`,
		string(model.StatusNotProcessed),
	)

	rec, err := scanPgRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: next unprocessed")
	}
	return rec, nil
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status model.RecordStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set status %s", id)
	}
	return checkTag(tag, "record", id)
}

func (s *PostgresStore) SaveResult(ctx context.Context, id string, result *model.VerificationResult) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts
		 SET name_present = $1, phone_present = $2, title_present = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		result.NamePresent, result.PhonePresent, result.TitlePresent,
		string(model.StatusProcessed), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save result %s", id)
	}
	return checkTag(tag, "record", id)
}

func (s *PostgresStore) SetError(ctx context.Context, id string, msg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET error = $1, status = $2, updated_at = $3 WHERE id = $4`,
		msg, string(model.StatusError), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set error %s", id)
	}
	return checkTag(tag, "record", id)
}

func (s *PostgresStore) ResetProcessing(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET status = $1, updated_at = $2 WHERE status = $3`,
		string(model.StatusNotProcessed), time.Now().UTC(), string(model.StatusProcessing),
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: reset processing")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error) {
	query := `SELECT id, first_name, last_name, phone, job_title, source_url,
	                 name_present, phone_present, title_present, status, error, created_at, updated_at
	          FROM contacts WHERE 1=1`
	var args []any
	argN := 1

	if filter.Status != "" {
		query += ` AND status = $1`
		args = append(args, string(filter.Status))
		argN++
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(argN)
		args = append(args, filter.Limit)
		argN++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(argN)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var recs []model.Record
	for rows.Next() {
		rec, err := scanPgRecord(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func (s *PostgresStore) CountByStatus(ctx context.Context) (map[model.RecordStatus]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM contacts GROUP BY status`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count by status")
	}
	defer rows.Close()

	counts := make(map[model.RecordStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[model.RecordStatus(status)] = n
	}
	return counts, eris.Wrap(rows.Err(), "postgres: iterate counts")
}

func scanPgRecord(row pgx.Row) (*model.Record, error) {
	var rec model.Record
	var namePresent, phonePresent, titlePresent *bool
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
	if namePresent != nil || errMsg != "" {
		rec.Result = &model.VerificationResult{Error: errMsg}
		if namePresent != nil {
			rec.Result.NamePresent = *namePresent
		}
		if phonePresent != nil {
			rec.Result.PhonePresent = *phonePresent
		}
		if titlePresent != nil {
			rec.Result.TitlePresent = *titlePresent
		}
	}
	return &rec, nil
}

func checkTag(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: %s %s not found", entity, id)
	}
	return nil
}
