package sqldb

import (
	"confsite/internal/dbx"
	"confsite/internal/domain"
)

// Manager vends repositories for one dialect, bound to either the pool or a transaction.
type Manager struct {
	Dialect Dialect
}

// NewManager returns a Manager for the given dialect.
func NewManager(dialect Dialect) *Manager {
	return &Manager{Dialect: dialect}
}

// Users returns a domain.UserRepository bound to db.
func (m *Manager) Users(db dbx.DBTX) domain.UserRepository {
	return NewUserRepository(db, m.Dialect)
}

// Speakers returns a domain.SpeakerRepository bound to db.
func (m *Manager) Speakers(db dbx.DBTX) domain.SpeakerRepository {
	return NewSpeakerRepository(db, m.Dialect)
}

// ImportantDates returns a domain.ImportantDateRepository bound to db.
func (m *Manager) ImportantDates(db dbx.DBTX) domain.ImportantDateRepository {
	return NewImportantDateRepository(db, m.Dialect)
}
