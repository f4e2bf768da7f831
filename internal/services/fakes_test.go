package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"confsite/internal/dbx"
	"confsite/internal/domain"
	"confsite/internal/repository/sqldb"
)

// newTestDB returns a migrated in-memory SQLite database and its repository manager.
func newTestDB(t *testing.T) (*sql.DB, *sqldb.Manager) {
	t.Helper()
	ctx := context.Background()
	db, dialect, err := sqldb.Open(ctx, "sqlite://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqldb.Migrate(ctx, db, dialect))
	return db, sqldb.NewManager(dialect)
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byUsername map[string]*domain.User
	nextID     int64
	getErr     error
	createErr  error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byUsername: map[string]*domain.User{}}
	for _, u := range users {
		f.byUsername[u.Username] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// fakeTx runs fn directly and records whether it ended in error.
type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	f.calls++
	err := fn(ctx, nil)
	f.rolledBack = err != nil
	return err
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	saltErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err        error
	lastExpiry time.Duration
}

func (f *fakeTokenIssuer) Issue(userID int64, username string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastExpiry = expiry
	return fmt.Sprintf("token-%d", userID), nil
}

// memImageStore implements domain.ImageStore in memory, keyed by reference.
type memImageStore struct {
	objects map[string][]byte
	err     error
}

func newMemImageStore() *memImageStore {
	return &memImageStore{objects: map[string][]byte{}}
}

func (m *memImageStore) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	ref := "mem-" + filename
	m.objects[ref] = b
	return ref, nil
}

func upload(name, content string) *domain.UploadedFile {
	return &domain.UploadedFile{Filename: name, Content: bytes.NewReader([]byte(content))}
}
