package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaTables = []string{"categories", "articles", "tags", "article_tags", "faqs", "redirects", "feedback"}

var schemaIndexes = []string{
	"idx_articles_status_published_at",
	"idx_articles_category_id",
	"idx_faqs_category_id",
	"idx_feedback_article_id",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestMigrateUp(t *testing.T) {
	db, mock := newMock(t)

	for _, name := range schemaTables {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + name + " ").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, idx := range schemaIndexes {
		mock.ExpectExec(idx).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("trgm_articles_title").WillReturnError(errors.New("permission denied"))
	mock.ExpectExec("trgm_articles_content").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, MigrateUp(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_WithoutTrigramExtension(t *testing.T) {
	db, mock := newMock(t)

	for _, name := range schemaTables {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + name + " ").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	for _, idx := range schemaIndexes {
		mock.ExpectExec(idx).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").WillReturnError(errors.New("extension not available"))
	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, MigrateUp(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_Failures(t *testing.T) {
	tests := []struct {
		name    string
		expect  func(sqlmock.Sqlmock)
		wantErr error
		wantMsg string
	}{
		{
			name: "table",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec("CREATE TABLE IF NOT EXISTS categories").WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
			wantMsg: "create tables",
		},
		{
			name: "index",
			expect: func(m sqlmock.Sqlmock) {
				for _, name := range schemaTables {
					m.ExpectExec("CREATE TABLE IF NOT EXISTS " + name + " ").WillReturnResult(sqlmock.NewResult(0, 0))
				}
				m.ExpectExec(schemaIndexes[0]).WillReturnError(sql.ErrTxDone)
			},
			wantErr: sql.ErrTxDone,
			wantMsg: "create indexes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			tt.expect(mock)

			err := MigrateUp(context.Background(), db)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrateDown(t *testing.T) {
	db, mock := newMock(t)
	for _, name := range dropOrder {
		mock.ExpectExec("DROP TABLE IF EXISTS " + name + "$").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, MigrateDown(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_StopsOnError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DROP TABLE IF EXISTS feedback").WillReturnError(sql.ErrConnDone)

	err := MigrateDown(context.Background(), db)
	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "drop feedback")
}
