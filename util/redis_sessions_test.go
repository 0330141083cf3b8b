package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariebrainware/medical-staff/config"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRedisMock(t *testing.T) redismock.ClientMock {
	t.Helper()
	db, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(db)
	t.Cleanup(func() {
		config.SetRedisClientForTest(nil)
		_ = db.Close()
	})
	return mock
}

func TestAddAccountSession(t *testing.T) {
	mock := withRedisMock(t)
	id := uuid.New()
	key := accountSessionKey("patient", id)

	mock.ExpectTxPipeline()
	mock.ExpectSAdd(key, "token-1").SetVal(1)
	mock.ExpectExpire(key, time.Hour).SetVal(true)
	mock.ExpectTxPipelineExec()

	require.NoError(t, AddAccountSession(context.Background(), "patient", id, "token-1", time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasAccountSession(t *testing.T) {
	mock := withRedisMock(t)
	id := uuid.New()
	key := accountSessionKey("physician", id)

	mock.ExpectSIsMember(key, "token-1").SetVal(true)
	mock.ExpectSIsMember(key, "token-2").SetVal(false)

	ok, err := HasAccountSession(context.Background(), "physician", id, "token-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasAccountSession(context.Background(), "physician", id, "token-2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasAccountSession_Error(t *testing.T) {
	mock := withRedisMock(t)
	id := uuid.New()

	mock.ExpectSIsMember(accountSessionKey("patient", id), "token").SetErr(errors.New("connection refused"))

	ok, err := HasAccountSession(context.Background(), "patient", id, "token")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestInvalidateAccountSessions(t *testing.T) {
	mock := withRedisMock(t)
	id := uuid.New()

	mock.ExpectDel(accountSessionKey("patient", id)).SetVal(1)

	require.NoError(t, InvalidateAccountSessions(context.Background(), "patient", id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountSessions_NoRedis(t *testing.T) {
	config.SetRedisClientForTest(nil)
	id := uuid.New()
	ctx := context.Background()

	assert.NoError(t, AddAccountSession(ctx, "patient", id, "t", time.Hour))
	ok, err := HasAccountSession(ctx, "patient", id, "t")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, InvalidateAccountSessions(ctx, "patient", id))
}
