package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"confsite/internal/dbx"
	"confsite/internal/domain"
)

type importantDateRepository struct {
	DB      dbx.DBTX
	dialect Dialect
}

// NewImportantDateRepository returns a domain.ImportantDateRepository bound to db.
func NewImportantDateRepository(db dbx.DBTX, dialect Dialect) domain.ImportantDateRepository {
	return &importantDateRepository{DB: db, dialect: dialect}
}

func (r *importantDateRepository) List(ctx context.Context) ([]*domain.ImportantDate, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, date_str FROM important_dates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []*domain.ImportantDate{}
	for rows.Next() {
		var d domain.ImportantDate
		if err := rows.Scan(&d.ID, &d.Name, &d.DateStr); err != nil {
			return nil, err
		}
		dates = append(dates, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *importantDateRepository) GetByID(ctx context.Context, id int64) (*domain.ImportantDate, error) {
	var d domain.ImportantDate
	err := r.DB.QueryRowContext(ctx, rebind(r.dialect, `SELECT id, name, date_str FROM important_dates WHERE id = ?`), id).
		Scan(&d.ID, &d.Name, &d.DateStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *importantDateRepository) Create(ctx context.Context, d *domain.ImportantDate) error {
	query := rebind(r.dialect, `INSERT INTO important_dates (name, date_str) VALUES (?, ?) RETURNING id`)
	return r.DB.QueryRowContext(ctx, query, d.Name, d.DateStr).Scan(&d.ID)
}

func (r *importantDateRepository) Update(ctx context.Context, d *domain.ImportantDate) error {
	result, err := r.DB.ExecContext(ctx, rebind(r.dialect, `UPDATE important_dates SET name = ?, date_str = ? WHERE id = ?`), d.Name, d.DateStr, d.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *importantDateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, rebind(r.dialect, `DELETE FROM important_dates WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
