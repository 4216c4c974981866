package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

type contactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	ListAll(ctx context.Context) ([]*entity.Contact, error)
}

type ContactService struct {
	contactRepo contactRepository
}

func NewContactService(contactRepo contactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

type CreateContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (s *ContactService) CreateContact(ctx context.Context, input CreateContactInput) (*entity.Contact, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrInvalidRequest)
	}

	contact := &entity.Contact{
		ContactID: uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   strings.TrimSpace(input.Subject),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) ListContacts(ctx context.Context) ([]*entity.Contact, error) {
	return s.contactRepo.ListAll(ctx)
}
