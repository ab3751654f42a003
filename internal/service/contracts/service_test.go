package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adstack-mw/billboard-service/internal/domain"
	"github.com/adstack-mw/billboard-service/internal/service/contracts/models"
)

// Mock repositories
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) UpdateAgreementStatus(ctx context.Context, tenantID, id int64, status domain.AgreementStatus) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockContractRepository) UpdatePivotStatuses(ctx context.Context, contractID int64, status domain.PivotBookingStatus) error {
	args := m.Called(ctx, contractID, status)
	return args.Error(0)
}

type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func activeContract() *domain.Contract {
	return &domain.Contract{
		ID:              5,
		TenantID:        1,
		ClientID:        100,
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		AgreementStatus: domain.AgreementActive,
	}
}

func TestUpdateStatusCascadesPivots(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.AgreementStatus
		to        string
		wantPivot domain.PivotBookingStatus
	}{
		{"активация черновика", domain.AgreementDraft, "active", domain.PivotInUse},
		{"завершение активного", domain.AgreementActive, "completed", domain.PivotCompleted},
		{"отмена активного", domain.AgreementActive, "cancelled", domain.PivotCancelled},
		{"отмена черновика", domain.AgreementDraft, "cancelled", domain.PivotCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContractRepository)
			svc := NewService(repo, &stubTxManager{}, nopLogger{})

			contract := activeContract()
			contract.AgreementStatus = tt.from
			repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(contract, nil).Once()

			repo.On("UpdateAgreementStatus", mock.Anything, int64(1), int64(5), domain.AgreementStatus(tt.to)).Return(nil)
			repo.On("UpdatePivotStatuses", mock.Anything, int64(5), tt.wantPivot).Return(nil)

			// Повторное чтение для ответа после успешного перехода
			after := activeContract()
			after.AgreementStatus = domain.AgreementStatus(tt.to)
			repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(after, nil)

			resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
				TenantID: 1,
				Status:   tt.to,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.to, resp.AgreementStatus)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.AgreementStatus
		to   string
	}{
		{"завершенный не активируется", domain.AgreementCompleted, "active"},
		{"отмененный не завершается", domain.AgreementCancelled, "completed"},
		{"черновик не завершается напрямую", domain.AgreementDraft, "completed"},
		{"активный не возвращается в черновик", domain.AgreementActive, "draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContractRepository)
			svc := NewService(repo, &stubTxManager{}, nopLogger{})

			contract := activeContract()
			contract.AgreementStatus = tt.from
			repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(contract, nil)

			resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
				TenantID: 1,
				Status:   tt.to,
			})

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			repo.AssertNotCalled(t, "UpdateAgreementStatus")
			repo.AssertNotCalled(t, "UpdatePivotStatuses")
		})
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo := new(MockContractRepository)
	svc := NewService(repo, &stubTxManager{}, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		TenantID: 1,
		Status:   "suspended",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	repo.AssertNotCalled(t, "GetByID")
}
