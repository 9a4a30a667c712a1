package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. It is the default
// for single-operator CLI use; no server required.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqldb.Exec(pragma); err != nil {
			sqldb.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: sqldb}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS packages (
	id                TEXT PRIMARY KEY,
	client_identifier TEXT NOT NULL DEFAULT '',
	payment_mode      TEXT NOT NULL,
	verdict           TEXT NOT NULL,
	result            TEXT NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_packages_client ON packages(client_identifier);
CREATE INDEX IF NOT EXISTS idx_packages_verdict ON packages(verdict);
CREATE INDEX IF NOT EXISTS idx_packages_created_at ON packages(created_at);

CREATE TABLE IF NOT EXISTS document_results (
	package_id TEXT NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
	doc_type   TEXT NOT NULL,
	verdict    TEXT NOT NULL,
	result     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_results_package ON document_results(package_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SavePackage(ctx context.Context, verdict model.PackageVerdict) error {
	resultJSON, err := json.Marshal(verdict)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal package verdict")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO packages (id, client_identifier, payment_mode, verdict, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   client_identifier = excluded.client_identifier,
		   payment_mode = excluded.payment_mode,
		   verdict = excluded.verdict,
		   result = excluded.result,
		   created_at = excluded.created_at`,
		verdict.PackageID, verdict.ClientIdentifier, string(verdict.PaymentMode),
		string(verdict.OverallVerdict), string(resultJSON), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save package %s", verdict.PackageID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM document_results WHERE package_id = ?`, verdict.PackageID,
	); err != nil {
		return eris.Wrapf(err, "sqlite: clear document results %s", verdict.PackageID)
	}

	for _, doc := range verdict.DocumentResults {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal document result")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO document_results (package_id, doc_type, verdict, result) VALUES (?, ?, ?, ?)`,
			verdict.PackageID, string(doc.Type), string(doc.Verdict), string(docJSON),
		); err != nil {
			return eris.Wrapf(err, "sqlite: save document result %s", verdict.PackageID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit save package")
}

func (s *SQLiteStore) GetPackage(ctx context.Context, packageID string) (*StoredPackage, error) {
	var sp StoredPackage
	var resultJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT result, created_at FROM packages WHERE id = ?`,
		packageID,
	).Scan(&resultJSON, &sp.CreatedAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get package %s", packageID)
	}

	if err := json.Unmarshal([]byte(resultJSON), &sp.Verdict); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal package verdict")
	}
	return &sp, nil
}

func (s *SQLiteStore) ListPackages(ctx context.Context, filter PackageFilter) ([]StoredPackage, error) {
	query := `SELECT result, created_at FROM packages WHERE true`
	args := []any{}

	if filter.ClientIdentifier != "" {
		query += ` AND client_identifier = ?`
		args = append(args, filter.ClientIdentifier)
	}
	if filter.Verdict != "" {
		query += ` AND verdict = ?`
		args = append(args, string(filter.Verdict))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list packages")
	}
	defer rows.Close()

	var packages []StoredPackage
	for rows.Next() {
		var sp StoredPackage
		var resultJSON string

		if err := rows.Scan(&resultJSON, &sp.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan package")
		}
		if err := json.Unmarshal([]byte(resultJSON), &sp.Verdict); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal package verdict")
		}
		packages = append(packages, sp)
	}
	return packages, eris.Wrap(rows.Err(), "sqlite: list packages iterate")
}
