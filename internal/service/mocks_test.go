package service

import (
	"context"

	"courierdesk/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListSchedule(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockStore) CreateBooking(ctx context.Context, draft models.BookingDraft) (int64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) PatchStatus(ctx context.Context, id int64, status models.Status, messengerName string) (*models.Booking, error) {
	args := m.Called(ctx, id, status, messengerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockStore) ListCompanies(ctx context.Context) ([]models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Company), args.Error(1)
}

func (m *mockStore) QueryReport(ctx context.Context, q models.ReportQuery) ([]models.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockStore) ExportReport(ctx context.Context, q models.ReportQuery, format models.ExportFormat) (*models.Artifact, error) {
	args := m.Called(ctx, q, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *mockStore) BookingDocument(ctx context.Context, id int64) (*models.Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) EnqueueRefresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
