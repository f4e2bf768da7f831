package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"confsite/internal/adapters/auth"
	"confsite/internal/dbx"
	"confsite/internal/domain"
)

func newFakeAuthService(repo *fakeUserRepo, tx *fakeTx, issuer *fakeTokenIssuer) domain.AuthService {
	return NewAuthService(repo, tx, func(dbx.DBTX) domain.UserRepository { return repo }, &fakePasswordHasher{}, issuer, time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	admin := &domain.User{ID: 1, Username: "admin", Salt: "salt", PasswordHash: "hash-salt-secret"}

	tests := []struct {
		name      string
		username  string
		password  string
		repoErr   error
		issuerErr error
		wantToken string
		errIs     error
		wantErr   bool
	}{
		{name: "success", username: "admin", password: "secret", wantToken: "token-1"},
		{name: "username is trimmed", username: "  admin ", password: "secret", wantToken: "token-1"},
		{name: "wrong password", username: "admin", password: "nope", wantErr: true, errIs: domain.ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "secret", wantErr: true, errIs: domain.ErrInvalidCredentials},
		{name: "empty username", username: "", password: "secret", wantErr: true, errIs: domain.ErrInvalidCredentials},
		{name: "empty password", username: "admin", password: "", wantErr: true, errIs: domain.ErrInvalidCredentials},
		{name: "repository failure is not a credential error", username: "admin", password: "secret", repoErr: errors.New("db down"), wantErr: true},
		{name: "issuer failure", username: "admin", password: "secret", issuerErr: errors.New("sign"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo(admin)
			repo.getErr = tt.repoErr
			issuer := &fakeTokenIssuer{err: tt.issuerErr}
			svc := newFakeAuthService(repo, &fakeTx{}, issuer)

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				} else {
					assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
				}
				assert.Empty(t, token)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, admin, user)
			assert.Equal(t, time.Hour, issuer.lastExpiry)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	admin := &domain.User{ID: 5, Username: "admin"}
	svc := newFakeAuthService(newFakeUserRepo(admin), &fakeTx{}, &fakeTokenIssuer{})

	u, err := svc.CurrentUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, admin, u)

	_, err = svc.CurrentUser(context.Background(), 6)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates once then is a no-op", func(t *testing.T) {
		repo := newFakeUserRepo()
		tx := &fakeTx{}
		svc := newFakeAuthService(repo, tx, &fakeTokenIssuer{})

		created, err := svc.EnsureDefaultAdmin(ctx, "admin", "changeme")
		require.NoError(t, err)
		assert.True(t, created)
		require.Contains(t, repo.byUsername, "admin")
		assert.Equal(t, "hash-salt-changeme", repo.byUsername["admin"].PasswordHash)

		created, err = svc.EnsureDefaultAdmin(ctx, "admin", "other")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "hash-salt-changeme", repo.byUsername["admin"].PasswordHash, "existing password is kept")
		assert.Equal(t, 2, tx.calls)
	})

	t.Run("create failure rolls back", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErr = errors.New("disk full")
		tx := &fakeTx{}
		svc := newFakeAuthService(repo, tx, &fakeTokenIssuer{})

		created, err := svc.EnsureDefaultAdmin(ctx, "admin", "changeme")
		require.ErrorContains(t, err, "disk full")
		assert.False(t, created)
		assert.True(t, tx.rolledBack)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.getErr = errors.New("db down")
		svc := newFakeAuthService(repo, &fakeTx{}, &fakeTokenIssuer{})

		_, err := svc.EnsureDefaultAdmin(ctx, "admin", "changeme")
		require.ErrorContains(t, err, "db down")
	})

	t.Run("empty credentials rejected", func(t *testing.T) {
		svc := newFakeAuthService(newFakeUserRepo(), &fakeTx{}, &fakeTokenIssuer{})
		_, err := svc.EnsureDefaultAdmin(ctx, " ", "x")
		require.Error(t, err)
		_, err = svc.EnsureDefaultAdmin(ctx, "admin", "")
		require.Error(t, err)
	})
}

func TestAuthService_SeedAndLogin_SQLite(t *testing.T) {
	ctx := context.Background()
	db, repos := newTestDB(t)
	tokens := auth.NewSessionTokens("secret")
	svc := NewAuthService(repos.Users(db), dbx.Runner{DB: db}, repos.Users, auth.NewBcryptHasher(bcrypt.MinCost), tokens, time.Hour)

	created, err := svc.EnsureDefaultAdmin(ctx, "admin", "changeme123")
	require.NoError(t, err)
	require.True(t, created)
	created, err = svc.EnsureDefaultAdmin(ctx, "admin", "changeme123")
	require.NoError(t, err)
	require.False(t, created)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)

	token, user, err := svc.Login(ctx, "admin", "changeme123")
	require.NoError(t, err)
	id, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	current, err := svc.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "admin", current.Username)

	for _, pair := range [][2]string{{"admin", "wrong"}, {"root", "changeme123"}, {"", ""}} {
		token, _, err := svc.Login(ctx, pair[0], pair[1])
		require.ErrorIs(t, err, domain.ErrInvalidCredentials, pair)
		assert.Empty(t, token)
	}
}
