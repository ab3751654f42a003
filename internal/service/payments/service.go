package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adstack-mw/billboard-service/internal/domain"
	paymentRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/payment"
	subscriptionRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/subscription"
	"github.com/adstack-mw/billboard-service/internal/service/payments/models"
)

// Service сервис для работы с платежами
type Service struct {
	paymentRepo      PaymentRepository
	subscriptionRepo SubscriptionRepository
	txManager        TransactionManager
	logger           Logger
	maxAttempts      int
}

// NewService создает новый экземпляр сервиса платежей
// maxAttempts задает лимит повторных попыток для новых платежей;
// неположительное значение заменяется дефолтом
func NewService(
	paymentRepo PaymentRepository,
	subscriptionRepo SubscriptionRepository,
	txManager TransactionManager,
	logger Logger,
	maxAttempts int,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxPaymentAttempts
	}
	return &Service{
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
		maxAttempts:      maxAttempts,
	}
}

// Initiate создает платеж в статусе pending с уникальным reference
// для сопоставления последующих webhook'ов провайдера
func (s *Service) Initiate(ctx context.Context, req *models.InitiatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Initiate: tenant=%d, provider=%s, amount=%.2f", req.TenantID, req.Provider, req.Amount)

	if err := s.validateInitiate(req); err != nil {
		s.logger.Warn("Initiate: validation failed: %v", err)
		return nil, err
	}

	// Платеж по подписке допустим только в billable-статусах
	if req.SubscriptionID != nil {
		sub, err := s.subscriptionRepo.GetByID(ctx, req.TenantID, *req.SubscriptionID)
		if err != nil {
			if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
				s.logger.Warn("Initiate: subscription id=%d not found", *req.SubscriptionID)
				return nil, ErrSubscriptionNotFound
			}
			s.logger.Error("Initiate: failed to get subscription id=%d: %v", *req.SubscriptionID, err)
			return nil, fmt.Errorf("%w: Initiate - failed to get subscription: %v", ErrInternal, err)
		}
		if !sub.IsBillable() {
			s.logger.Warn("Initiate: subscription id=%d has status %s, not billable", sub.ID, sub.Status)
			return nil, ErrNotBillable
		}
	}

	payment := &domain.Payment{
		TenantID:       req.TenantID,
		Provider:       req.Provider,
		Amount:         req.Amount,
		PhoneNumber:    req.PhoneNumber,
		Reference:      uuid.NewString(),
		Status:         domain.PaymentPending,
		MaxAttempts:    s.maxAttempts,
		BookingID:      req.BookingID,
		SubscriptionID: req.SubscriptionID,
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		s.logger.Error("Initiate: failed to create payment: %v", err)
		return nil, fmt.Errorf("%w: Initiate - failed to create payment: %v", ErrInternal, err)
	}

	s.logger.Info("Initiate: payment id=%d created with reference=%s", created.ID, created.Reference)
	return models.FromDomainPayment(created), nil
}

// GetByID получает платеж по ID вместе с журналом ответов провайдера
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByID: payment id=%d not found", id)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	responses, err := s.paymentRepo.ListProviderResponses(ctx, payment.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to list provider responses for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list provider responses: %v", ErrInternal, err)
	}
	payment.ProviderResponses = responses

	return models.FromDomainPayment(payment), nil
}

// HandleWebhook обрабатывает callback платежного провайдера
// Ответ провайдера всегда записывается в журнал; платеж в терминальном
// состоянии не меняется - повторная доставка webhook'а идемпотентна
func (s *Service) HandleWebhook(ctx context.Context, req *models.WebhookRequest) (*models.PaymentResponse, error) {
	s.logger.Info("HandleWebhook: tenant=%d, reference=%s, result=%s", req.TenantID, req.Reference, req.ResultCode)

	result, err := models.ToDomainProviderResult(req.ResultCode)
	if err != nil {
		s.logger.Warn("HandleWebhook: invalid result code=%s for reference=%s", req.ResultCode, req.Reference)
		return nil, fmt.Errorf("%w: invalid result code", ErrInvalidInput)
	}

	var updated *domain.Payment

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.GetByReference(txCtx, req.TenantID, req.Reference)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				s.logger.Warn("HandleWebhook: payment with reference=%s not found", req.Reference)
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: HandleWebhook - repository error: %v", ErrInternal, err)
		}

		// Журнал ответов append-only: пишем до любых проверок статуса
		entry := &domain.ProviderResponse{
			PaymentID:  payment.ID,
			ResultCode: result,
			RawPayload: req.RawPayload,
		}
		if err := s.paymentRepo.AppendProviderResponse(txCtx, entry); err != nil {
			return fmt.Errorf("%w: HandleWebhook - failed to append provider response: %v", ErrInternal, err)
		}

		if payment.IsTerminal() {
			s.logger.Info("HandleWebhook: payment id=%d is terminal (status=%s), webhook recorded without transition",
				payment.ID, payment.Status)
			updated = payment
			return nil
		}

		next, ok := payment.NextStatusFor(result)
		if !ok {
			s.logger.Warn("HandleWebhook: result=%s not applicable to payment id=%d in status=%s",
				result, payment.ID, payment.Status)
			updated = payment
			return nil
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, req.TenantID, payment.ID, next); err != nil {
			return fmt.Errorf("%w: HandleWebhook - failed to update payment status: %v", ErrInternal, err)
		}
		payment.Status = next

		// Счетчик неудачных попыток подписки ведется по исходам платежей
		if payment.SubscriptionID != nil {
			switch next {
			case domain.PaymentCompleted:
				if err := s.subscriptionRepo.ResetFailedAttempts(txCtx, req.TenantID, *payment.SubscriptionID); err != nil {
					return fmt.Errorf("%w: HandleWebhook - failed to reset failed attempts: %v", ErrInternal, err)
				}
			case domain.PaymentFailed:
				if err := s.subscriptionRepo.IncrementFailedAttempts(txCtx, req.TenantID, *payment.SubscriptionID); err != nil {
					return fmt.Errorf("%w: HandleWebhook - failed to increment failed attempts: %v", ErrInternal, err)
				}
			}
		}

		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("HandleWebhook: payment id=%d now in status=%s", updated.ID, updated.Status)
	return models.FromDomainPayment(updated), nil
}

// Retry переводит неудавшийся платеж обратно в pending для повторной попытки
// Лимит попыток строгий: после его исчерпания платеж терминален
func (s *Service) Retry(ctx context.Context, tenantID, paymentID int64) (*models.PaymentResponse, error) {
	s.logger.Info("Retry: tenant=%d, payment=%d", tenantID, paymentID)

	var updated *domain.Payment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.GetByID(txCtx, tenantID, paymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				s.logger.Warn("Retry: payment id=%d not found", paymentID)
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: Retry - repository error: %v", ErrInternal, err)
		}

		if !payment.CanRetry() {
			if payment.Status == domain.PaymentFailed {
				s.logger.Warn("Retry: payment id=%d has exhausted retries (%d/%d)",
					payment.ID, payment.RetryCount, payment.MaxAttempts)
				return ErrRetriesExhausted
			}
			s.logger.Warn("Retry: payment id=%d has status %s, only failed payments can be retried",
				payment.ID, payment.Status)
			return fmt.Errorf("%w: only failed payments can be retried", ErrInvalidInput)
		}

		if err := s.paymentRepo.MarkRetried(txCtx, tenantID, payment.ID); err != nil {
			return fmt.Errorf("%w: Retry - failed to mark payment retried: %v", ErrInternal, err)
		}

		attempt := &domain.RetryAttempt{
			PaymentID:     payment.ID,
			AttemptNumber: payment.RetryCount + 1,
		}
		if err := s.paymentRepo.AppendRetryAttempt(txCtx, attempt); err != nil {
			return fmt.Errorf("%w: Retry - failed to append retry attempt: %v", ErrInternal, err)
		}

		payment.RetryCount++
		payment.Status = domain.PaymentPending
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Retry: payment id=%d back to pending, attempt %d of %d",
		updated.ID, updated.RetryCount, updated.MaxAttempts)
	return models.FromDomainPayment(updated), nil
}

func (s *Service) validateInitiate(req *models.InitiatePaymentRequest) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenant id must be positive", ErrInvalidInput)
	}
	if req.Provider == "" {
		return fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	// Ровно одна ссылка: бронирование или подписка
	if (req.BookingID == nil) == (req.SubscriptionID == nil) {
		return fmt.Errorf("%w: exactly one of bookingId or subscriptionId is required", ErrInvalidInput)
	}
	if req.BookingID != nil && *req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}
	if req.SubscriptionID != nil && *req.SubscriptionID <= 0 {
		return fmt.Errorf("%w: subscription id must be positive", ErrInvalidInput)
	}
	return nil
}
