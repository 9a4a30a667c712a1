package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteSaveAndGetPackage(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	want := testVerdict()
	require.NoError(t, s.SavePackage(ctx, want))

	got, err := s.GetPackage(ctx, want.PackageID)
	require.NoError(t, err)
	assert.Equal(t, want.PackageID, got.Verdict.PackageID)
	assert.Equal(t, want.OverallVerdict, got.Verdict.OverallVerdict)
	assert.Equal(t, want.PaymentMode, got.Verdict.PaymentMode)
	assert.Len(t, got.Verdict.DocumentResults, 2)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLiteGetPackage_NotFound(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetPackage(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSavePackage_Overwrites(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	v := testVerdict()
	require.NoError(t, s.SavePackage(ctx, v))

	v.OverallVerdict = model.VerdictNoGo
	v.DocumentResults = v.DocumentResults[:1]
	require.NoError(t, s.SavePackage(ctx, v))

	got, err := s.GetPackage(ctx, v.PackageID)
	require.NoError(t, err)
	assert.Equal(t, model.VerdictNoGo, got.Verdict.OverallVerdict)
	assert.Len(t, got.Verdict.DocumentResults, 1)

	all, err := s.ListPackages(ctx, PackageFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteListPackages_Filters(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a := testVerdict()
	require.NoError(t, s.SavePackage(ctx, a))

	b := testVerdict()
	b.PackageID = "pkg-2"
	b.ClientIdentifier = "gulf-polymers"
	b.OverallVerdict = model.VerdictGo
	require.NoError(t, s.SavePackage(ctx, b))

	byClient, err := s.ListPackages(ctx, PackageFilter{ClientIdentifier: "gulf-polymers"})
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, "pkg-2", byClient[0].Verdict.PackageID)

	byVerdict, err := s.ListPackages(ctx, PackageFilter{Verdict: model.VerdictWait})
	require.NoError(t, err)
	require.Len(t, byVerdict, 1)
	assert.Equal(t, "pkg-1", byVerdict[0].Verdict.PackageID)

	limited, err := s.ListPackages(ctx, PackageFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "open.db"), nil)
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.Migrate(context.Background()))
}
