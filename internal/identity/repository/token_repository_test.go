package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/testutil"
)

func TestNewMySQLTokenRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLTokenRepository(db)

	assert.Equal(t, db, repo.db)
}

func TestTokenRepository_Lifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLTokenRepository(db)
	ctx := context.Background()
	userID := testutil.InsertUser(t, db, "tokenuser")
	hash := "0000000000000000000000000000000000000000000000000000000000000001"

	require.NoError(t, repo.Insert(ctx, hash, userID))

	got, err := repo.FindUserID(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	deleted, err := repo.Delete(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindUserID(ctx, hash)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
