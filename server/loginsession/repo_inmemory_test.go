package loginsession_test

import (
	"testing"
	"time"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
	"github.com/JTonyC/servicenow-entraid-approvals/server/loginsession"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	t.Run("upsert and get", func(t *testing.T) {
		repo := loginsession.NewInMemoryRepo()
		session := loginsession.Session{
			Name:        "Jane Doe",
			AccessToken: "token-1",
			ExpiresAt:   time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.Upsert("sid-1", session))

		got, err := repo.Get("sid-1")
		require.NoError(t, err)
		require.Equal(t, "Jane Doe", got.Name)
		require.Equal(t, "token-1", got.AccessToken)
	})

	t.Run("unknown session", func(t *testing.T) {
		repo := loginsession.NewInMemoryRepo()
		_, err := repo.Get("missing")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		repo := loginsession.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("sid-1", loginsession.Session{
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		_, err := repo.Get("sid-1")
		require.ErrorIs(t, err, errors.ErrSessionExpired)

		_, err = repo.Get("sid-1")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := loginsession.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("sid-1", loginsession.Session{}))
		require.NoError(t, repo.Delete("sid-1"))
		require.NoError(t, repo.Delete("sid-1"))

		_, err := repo.Get("sid-1")
		require.ErrorIs(t, err, errors.ErrSessionNotFound)
	})
}
