package domain

import "context"

// ImportantDate is a named deadline. DateStr is free text, stored and shown verbatim.
// swagger:model ImportantDate
type ImportantDate struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	DateStr string `json:"date_str"`
}

// NewImportantDate returns a new ImportantDate. ID is set by the repository on create.
func NewImportantDate(name, dateStr string) *ImportantDate {
	return &ImportantDate{Name: name, DateStr: dateStr}
}

// ImportantDateRepository defines the interface for important date storage
type ImportantDateRepository interface {
	List(ctx context.Context) ([]*ImportantDate, error)
	GetByID(ctx context.Context, id int64) (*ImportantDate, error)
	Create(ctx context.Context, date *ImportantDate) error
	Update(ctx context.Context, date *ImportantDate) error
	Delete(ctx context.Context, id int64) error
}

// ImportantDateService defines the business logic for managing important dates.
type ImportantDateService interface {
	List(ctx context.Context) ([]*ImportantDate, error)
	// Create inserts a date only when both name and dateStr are non-empty.
	// created is false (with a nil error) when either is empty.
	Create(ctx context.Context, name, dateStr string) (date *ImportantDate, created bool, err error)
	// UpdateDate overwrites the date label only; the name is left unchanged.
	UpdateDate(ctx context.Context, id int64, dateStr string) (*ImportantDate, error)
	Delete(ctx context.Context, id int64) error
}
