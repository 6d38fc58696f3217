package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type messageRepo interface {
	CreateTx(tx *gorm.DB, message *models.Message) error
	List(ctx context.Context) ([]models.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type outboxWriter interface {
	EnqueueTx(tx *gorm.DB, topic string, payload any) error
}

// Service stores contact-form submissions and relays them to the notification
// endpoint through the outbox.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   messageRepo
	tx     txRunner
	outbox outboxWriter
}

// NewService builds the contact-message service.
func NewService(repo messageRepo, tx txRunner, ob outboxWriter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("message repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox writer required")
	}
	return &service{repo: repo, tx: tx, outbox: ob}, nil
}

// SubmitInput carries one contact-form submission.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type relayPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Message, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body is required")
	}

	message := &models.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Body:    input.Body,
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, message); err != nil {
			return err
		}
		return s.outbox.EnqueueTx(tx, outbox.TopicContactMessage, relayPayload{
			Name:    message.Name,
			Email:   message.Email,
			Subject: message.Subject,
			Body:    message.Body,
		})
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist message")
	}
	return message, nil
}

func (s *service) List(ctx context.Context) ([]models.Message, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return rows, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark message read")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete message")
	}
	return nil
}
