package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

func testVerdict() model.PackageVerdict {
	return model.PackageVerdict{
		PackageID:        "pkg-1",
		ClientIdentifier: "acme-trading",
		OverallVerdict:   model.VerdictWait,
		PaymentMode:      model.PaymentModeLC,
		Recommendation:   "Hold for review.",
		DocumentResults: []model.DocumentResult{
			{Type: model.DocLetterOfCredit, Verdict: model.VerdictGo},
			{Type: model.DocBillOfLading, Verdict: model.VerdictWait},
		},
	}
}

func TestPostgresSavePackage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO "packages"`).
		WithArgs("pkg-1", "acme-trading", "lc", "WAIT", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM document_results`).
		WithArgs("pkg-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"document_results"}, documentResultColumns).
		WillReturnResult(2)

	s := NewPostgresFromPool(mock)
	require.NoError(t, s.SavePackage(context.Background(), testVerdict()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSavePackage_UpsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO "packages"`).
		WithArgs("pkg-1", "acme-trading", "lc", "WAIT", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)

	s := NewPostgresFromPool(mock)
	err = s.SavePackage(context.Background(), testVerdict())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save package pkg-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetPackage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := testVerdict()
	payload, err := json.Marshal(want)
	require.NoError(t, err)
	created := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT result, created_at FROM packages`).
		WithArgs("pkg-1").
		WillReturnRows(pgxmock.NewRows([]string{"result", "created_at"}).AddRow(payload, created))

	s := NewPostgresFromPool(mock)
	got, err := s.GetPackage(context.Background(), "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, want.PackageID, got.Verdict.PackageID)
	assert.Equal(t, model.VerdictWait, got.Verdict.OverallVerdict)
	assert.Len(t, got.Verdict.DocumentResults, 2)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetPackage_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT result, created_at FROM packages`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	s := NewPostgresFromPool(mock)
	_, err = s.GetPackage(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListPackages_Filtered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	payload, err := json.Marshal(testVerdict())
	require.NoError(t, err)
	created := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT result, created_at FROM packages`).
		WithArgs("acme-trading", "WAIT", 25).
		WillReturnRows(pgxmock.NewRows([]string{"result", "created_at"}).AddRow(payload, created))

	s := NewPostgresFromPool(mock)
	got, err := s.ListPackages(context.Background(), PackageFilter{
		ClientIdentifier: "acme-trading",
		Verdict:          model.VerdictWait,
		Limit:            25,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pkg-1", got[0].Verdict.PackageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS packages`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	s := NewPostgresFromPool(mock)
	assert.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
