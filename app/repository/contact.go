package repository

import (
	"context"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (contact_id, name, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	contact.ID = uint64(id)
	return nil
}

func (r *ContactRepository) ListAll(ctx context.Context) ([]*entity.Contact, error) {
	query := `
		SELECT id, contact_id, name, email, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]*entity.Contact, 0)
	for rows.Next() {
		contact := &entity.Contact{}
		err := rows.Scan(
			&contact.ID,
			&contact.ContactID,
			&contact.Name,
			&contact.Email,
			&contact.Subject,
			&contact.Message,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contacts, nil
}
