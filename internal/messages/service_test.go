package messages

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atlastours/rentals-backend/pkg/db/models"
	pkgerrors "github.com/atlastours/rentals-backend/pkg/errors"
	"github.com/atlastours/rentals-backend/pkg/outbox"
)

type stubRepo struct {
	created []*models.Message
	read    []uuid.UUID
	deleted []uuid.UUID
}

func (s *stubRepo) CreateTx(_ *gorm.DB, message *models.Message) error {
	message.ID = uuid.New()
	s.created = append(s.created, message)
	return nil
}

func (s *stubRepo) List(context.Context) ([]models.Message, error) {
	var out []models.Message
	for _, m := range s.created {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	s.read = append(s.read, id)
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	topics   []string
	payloads [][]byte
}

func (s *stubOutbox) EnqueueTx(_ *gorm.DB, topic string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.topics = append(s.topics, topic)
	s.payloads = append(s.payloads, raw)
	return nil
}

func TestSubmitPersistsAndRelays(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	ob := &stubOutbox{}
	svc, err := NewService(repo, stubTx{}, ob)
	require.NoError(t, err)

	message, err := svc.Submit(context.Background(), SubmitInput{
		Name:    "  Ana Silva  ",
		Email:   "ana@example.com",
		Subject: "Camping gear",
		Body:    "Do you rent tents separately?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Silva", message.Name)
	require.Len(t, repo.created, 1)
	require.Equal(t, []string{outbox.TopicContactMessage}, ob.topics)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(ob.payloads[0], &payload))
	assert.Equal(t, "ana@example.com", payload["email"])
	assert.Equal(t, "Camping gear", payload["subject"])
}

func TestSubmitValidates(t *testing.T) {
	t.Parallel()
	svc, err := NewService(&stubRepo{}, stubTx{}, &stubOutbox{})
	require.NoError(t, err)
	ctx := context.Background()

	cases := []SubmitInput{
		{Email: "a@b.c", Body: "hi"},
		{Name: "Ana", Body: "hi"},
		{Name: "Ana", Email: "a@b.c", Body: "  "},
	}
	for _, input := range cases {
		_, err := svc.Submit(ctx, input)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
}

func TestMarkReadAndDelete(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	svc, err := NewService(repo, stubTx{}, &stubOutbox{})
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, svc.MarkRead(context.Background(), id))
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.read)
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}
