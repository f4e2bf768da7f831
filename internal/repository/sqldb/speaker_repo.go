package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"confsite/internal/dbx"
	"confsite/internal/domain"
)

type speakerRepository struct {
	DB      dbx.DBTX
	dialect Dialect
}

// NewSpeakerRepository returns a domain.SpeakerRepository bound to db.
func NewSpeakerRepository(db dbx.DBTX, dialect Dialect) domain.SpeakerRepository {
	return &speakerRepository{DB: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpeaker(row rowScanner) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var affiliation, bio sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &affiliation, &bio, &s.Image); err != nil {
		return nil, err
	}
	s.Affiliation = affiliation.String
	s.Bio = bio.String
	return s, nil
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, affiliation, bio, image FROM speakers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := []*domain.Speaker{}
	for rows.Next() {
		s, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return speakers, nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	query := rebind(r.dialect, `SELECT id, name, affiliation, bio, image FROM speakers WHERE id = ?`)
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := rebind(r.dialect, `
		INSERT INTO speakers (name, affiliation, bio, image)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	return r.DB.QueryRowContext(ctx, query, s.Name, s.Affiliation, s.Bio, s.Image).Scan(&s.ID)
}

func (r *speakerRepository) Update(ctx context.Context, s *domain.Speaker) error {
	query := rebind(r.dialect, `
		UPDATE speakers
		SET name = ?, affiliation = ?, bio = ?, image = ?
		WHERE id = ?
	`)
	result, err := r.DB.ExecContext(ctx, query, s.Name, s.Affiliation, s.Bio, s.Image, s.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *speakerRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, rebind(r.dialect, `DELETE FROM speakers WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
