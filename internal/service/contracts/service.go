package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/adstack-mw/billboard-service/internal/domain"
	contractRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/contract"
	"github.com/adstack-mw/billboard-service/internal/service/contracts/models"
)

// Service сервис для работы с договорами
type Service struct {
	contractRepo ContractRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса договоров
func NewService(
	contractRepo ContractRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		contractRepo: contractRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает договор по ID вместе с pivot-записями щитов
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.ContractResponse, error) {
	s.logger.Info("GetByID: fetching contract id=%d for tenant=%d", id, tenantID)

	contract, err := s.contractRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, contractRepo.ErrContractNotFound) {
			s.logger.Warn("GetByID: contract id=%d not found", id)
			return nil, ErrContractNotFound
		}
		s.logger.Error("GetByID: repository error for contract id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainContract(contract), nil
}

// UpdateStatus выполняет ручную смену статуса договора оператором
// Переход валидируется state machine договора, pivot-записи обновляются
// каскадно через ту же таблицу соответствия, что и time-driven sweep
func (s *Service) UpdateStatus(ctx context.Context, contractID int64, req *models.UpdateStatusRequest) (*models.ContractResponse, error) {
	s.logger.Info("UpdateStatus: updating contract id=%d to status=%s for tenant=%d",
		contractID, req.Status, req.TenantID)

	next, err := models.ToDomainAgreementStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for contract id=%d", req.Status, contractID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Загружается с блокировкой FOR UPDATE внутри транзакции
		contract, err := s.contractRepo.GetByID(txCtx, req.TenantID, contractID)
		if err != nil {
			if errors.Is(err, contractRepo.ErrContractNotFound) {
				return ErrContractNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !contract.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for contract id=%d",
				contract.AgreementStatus, next, contractID)
			return ErrInvalidStateTransition
		}

		if err := s.contractRepo.UpdateAgreementStatus(txCtx, req.TenantID, contractID, next); err != nil {
			return fmt.Errorf("%w: UpdateStatus - failed to update agreement status: %v", ErrInternal, err)
		}

		pivot := domain.PivotStatusFor(next)
		if err := s.contractRepo.UpdatePivotStatuses(txCtx, contractID, pivot); err != nil {
			return fmt.Errorf("%w: UpdateStatus - failed to cascade pivot statuses: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: contract id=%d moved to %s, pivots set to %s", contractID, next, pivot)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, req.TenantID, contractID)
}
