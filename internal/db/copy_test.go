package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "document_results", []string{"package_id", "doc_type"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"document_results"}, []string{"package_id", "doc_type", "verdict"}).WillReturnResult(3)

	rows := [][]any{
		{"pkg-1", "letter_of_credit", "GO"},
		{"pkg-1", "bill_of_lading", "GO"},
		{"pkg-1", "commercial_invoice", "WAIT"},
	}
	n, err := CopyFrom(context.Background(), mock, "document_results", []string{"package_id", "doc_type", "verdict"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"document_results"}, []string{"package_id"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"pkg-1"}}
	_, err = CopyFrom(context.Background(), mock, "document_results", []string{"package_id"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO document_results")
	assert.NoError(t, mock.ExpectationsWereMet())
}
