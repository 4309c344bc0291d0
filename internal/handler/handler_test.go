package handler_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/handler"
	"github.com/leadforge/b2b-api/internal/queue"
	"github.com/leadforge/b2b-api/internal/repository"
)

const testUser = "3f1c9f0a-90f5-4f2a-9c51-6f7a2d3b8e11"

// fakeBroker records published events and optionally fails, standing in for
// the AMQP publisher.
type fakeBroker struct {
	queries []queue.NewQueryEvent
	images  []queue.ImageGenerationEvent
	err     error
}

func (f *fakeBroker) PublishNewQuery(_ context.Context, e queue.NewQueryEvent) error {
	if f.err != nil {
		return f.err
	}
	f.queries = append(f.queries, e)
	return nil
}

func (f *fakeBroker) PublishImageGeneration(_ context.Context, e queue.ImageGenerationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.images = append(f.images, e)
	return nil
}

// newTestAPI wires an APIHandler onto a single mocked DB and a fake broker.
// The sheet service stays nil, as it does in unconfigured deployments.
func newTestAPI(t *testing.T) (*handler.APIHandler, sqlmock.Sqlmock, *fakeBroker) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	broker := &fakeBroker{}
	h := handler.NewAPIHandler(
		repository.NewGuard(db),
		repository.NewProjectRepo(db),
		repository.NewQueryRepo(db),
		repository.NewCompanyRepo(db),
		repository.NewEmployeeRepo(db),
		repository.NewTemplateRepo(db),
		repository.NewImageRepo(db),
		repository.NewStatsRepo(db),
		broker,
		nil,
	)
	return h, mock, broker
}
