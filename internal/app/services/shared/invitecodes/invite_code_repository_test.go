package invitecodes

import (
	"context"
	"os"
	"path/filepath"
	redisRepo "provider-directory/internal/app/services/shared/redis"
	"provider-directory/internal/pkg/exceptions"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTable = Table{
	User:  map[string]string{"U-100": "P1"},
	Admin: map[string]string{"A-200": "O1"},
}

func TestStaticInviteCodeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("finds codes per tier", func(t *testing.T) {
		repo, err := NewStaticInviteCodeRepository(testTable)
		require.NoError(t, err)

		id, found, err := repo.FindUserCode(ctx, "U-100")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "P1", id)

		_, found, err = repo.FindUserCode(ctx, "A-200")
		require.NoError(t, err)
		assert.False(t, found)

		id, found, err = repo.FindAdminCode(ctx, "A-200")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "O1", id)
	})

	t.Run("rejects a code in both tiers", func(t *testing.T) {
		_, err := NewStaticInviteCodeRepository(Table{
			User:  map[string]string{"X": "P1"},
			Admin: map[string]string{"X": "O1"},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "X")
	})
}

func TestLoadTable(t *testing.T) {
	t.Run("reads the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "codes.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"user":{"U-1":"P9"},"admin":{"A-1":"O9"}}`), 0o600))

		table, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, "P9", table.User["U-1"])
		assert.Equal(t, "O9", table.Admin["A-1"])
	})

	t.Run("malformed file is invalid input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "codes.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"user":`), 0o600))

		_, err := LoadTable(path)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidInput))
	})
}

func TestRedisInviteCodeRepository(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := NewRedisInviteCodeRepository(redisRepo.NewRedisRepository(client), zap.NewNop())
	require.NoError(t, repo.Seed(ctx, testTable))

	stored, err := server.Get("invite:admin:A-200")
	require.NoError(t, err)
	assert.Equal(t, "O1", stored)

	id, found, err := repo.FindUserCode(ctx, "U-100")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "P1", id)

	_, found, err = repo.FindAdminCode(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)

	t.Run("lookup failure is reported", func(t *testing.T) {
		server.SetError("boom")
		defer server.SetError("")

		_, _, err := repo.FindUserCode(ctx, "U-100")
		assert.Error(t, err)
	})
}
