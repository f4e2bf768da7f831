package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user and auth operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an admin account. Only the username is ever serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(username, passwordHash, salt string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Salt:         salt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, username string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// AuthService defines login, session lookup and admin seeding.
type AuthService interface {
	// Login checks the credentials and returns a session token for the user.
	// Unknown users and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
	// CurrentUser reconstructs the session user by id.
	CurrentUser(ctx context.Context, id int64) (*User, error)
	// EnsureDefaultAdmin creates the admin account if no user with that username exists.
	EnsureDefaultAdmin(ctx context.Context, username, password string) (created bool, err error)
}
