package tracker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/listing-tracker/internal/diff"
	"github.com/sells-group/listing-tracker/internal/model"
	"github.com/sells-group/listing-tracker/internal/scrape"
	"github.com/sells-group/listing-tracker/internal/store"
	"github.com/sells-group/listing-tracker/pkg/sheets"
)

// --- Scraper Mock ---

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) Scrape(ctx context.Context, brand string) (*scrape.Result, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.Result), args.Error(1)
}

// --- Snapshot Writer Mock ---

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Write(ctx context.Context, date string, records []model.ProductRecord) (*sheets.Worksheet, error) {
	args := m.Called(ctx, date, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sheets.Worksheet), args.Error(1)
}

// --- Differ Mock ---

type mockDiffer struct {
	mock.Mock
}

func (m *mockDiffer) Run(ctx context.Context, date string) (*diff.Result, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*diff.Result), args.Error(1)
}

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateRun(ctx context.Context, brand, date string) (*model.Run, error) {
	args := m.Called(ctx, brand, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, result *model.RunResult) error {
	return m.Called(ctx, runID, status, result).Error(0)
}

func (m *mockStore) FailRun(ctx context.Context, runID string, reason string) error {
	return m.Called(ctx, runID, reason).Error(0)
}

func (m *mockStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Run), args.Error(1)
}

func (m *mockStore) ListRuns(ctx context.Context, filter store.RunFilter) ([]model.Run, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Run), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
