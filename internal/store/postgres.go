package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/LucasDotTrade/lucas-brain/internal/db"
	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool. Statement
// caching is left to pgx's per-connection cache; queries here are already
// executed by text.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
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
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS packages (
	id                TEXT PRIMARY KEY,
	client_identifier TEXT NOT NULL DEFAULT '',
	payment_mode      TEXT NOT NULL,
	verdict           TEXT NOT NULL,
	result            JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_packages_client ON packages(client_identifier);
CREATE INDEX IF NOT EXISTS idx_packages_verdict ON packages(verdict);
CREATE INDEX IF NOT EXISTS idx_packages_created_at ON packages(created_at DESC);

CREATE TABLE IF NOT EXISTS document_results (
	package_id TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
	doc_type   TEXT NOT NULL,
	verdict    TEXT NOT NULL,
	result     JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_results_package ON document_results(package_id);
CREATE INDEX IF NOT EXISTS idx_document_results_type ON document_results(doc_type);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// documentResultColumns matches the document_results COPY order.
var documentResultColumns = []string{"package_id", "doc_type", "verdict", "result"}

func (s *PostgresStore) SavePackage(ctx context.Context, verdict model.PackageVerdict) error {
	resultJSON, err := json.Marshal(verdict)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal package verdict")
	}

	_, err = db.Upsert(ctx, s.pool, db.UpsertConfig{
		Table:        "packages",
		Columns:      []string{"id", "client_identifier", "payment_mode", "verdict", "result", "created_at"},
		ConflictKeys: []string{"id"},
	}, []any{
		verdict.PackageID, verdict.ClientIdentifier, string(verdict.PaymentMode),
		string(verdict.OverallVerdict), resultJSON, time.Now().UTC(),
	})
	if err != nil {
		return eris.Wrapf(err, "postgres: save package %s", verdict.PackageID)
	}

	// Replace the per-document rows wholesale; a re-validated package may
	// carry a different document set.
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM document_results WHERE package_id = $1`, verdict.PackageID,
	); err != nil {
		return eris.Wrapf(err, "postgres: clear document results %s", verdict.PackageID)
	}

	rows := make([][]any, 0, len(verdict.DocumentResults))
	for _, doc := range verdict.DocumentResults {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal document result")
		}
		rows = append(rows, []any{verdict.PackageID, string(doc.Type), string(doc.Verdict), docJSON})
	}
	if _, err := db.CopyFrom(ctx, s.pool, "document_results", documentResultColumns, rows); err != nil {
		return eris.Wrapf(err, "postgres: save document results %s", verdict.PackageID)
	}
	return nil
}

func (s *PostgresStore) GetPackage(ctx context.Context, packageID string) (*StoredPackage, error) {
	var sp StoredPackage
	var resultJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT result, created_at FROM packages WHERE id = $1`,
		packageID,
	).Scan(&resultJSON, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get package %s", packageID)
	}

	if err := json.Unmarshal(resultJSON, &sp.Verdict); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal package verdict")
	}
	return &sp, nil
}

func (s *PostgresStore) ListPackages(ctx context.Context, filter PackageFilter) ([]StoredPackage, error) {
	query := `SELECT result, created_at FROM packages WHERE true`
	args := []any{}
	argIdx := 1

	if filter.ClientIdentifier != "" {
		query += fmt.Sprintf(` AND client_identifier = $%d`, argIdx)
		args = append(args, filter.ClientIdentifier)
		argIdx++
	}
	if filter.Verdict != "" {
		query += fmt.Sprintf(` AND verdict = $%d`, argIdx)
		args = append(args, string(filter.Verdict))
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list packages")
	}
	defer rows.Close()

	var packages []StoredPackage
	for rows.Next() {
		var sp StoredPackage
		var resultJSON []byte

		if err := rows.Scan(&resultJSON, &sp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan package")
		}
		if err := json.Unmarshal(resultJSON, &sp.Verdict); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal package verdict")
		}
		packages = append(packages, sp)
	}
	return packages, eris.Wrap(rows.Err(), "postgres: list packages iterate")
}
