package subscriptions

import (
	"context"
	"errors"
	"fmt"

	subscriptionRepo "github.com/adstack-mw/billboard-service/internal/infra/storage/subscription"
	"github.com/adstack-mw/billboard-service/internal/service/subscriptions/models"
)

// Service сервис для работы с подписками
type Service struct {
	subscriptionRepo SubscriptionRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса подписок
func NewService(subscriptionRepo SubscriptionRepository, logger Logger) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// GetByID получает подписку с вычисленными показателями здоровья
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.SubscriptionResponse, error) {
	s.logger.Info("GetByID: fetching subscription id=%d for tenant=%d", id, tenantID)

	sub, err := s.subscriptionRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, subscriptionRepo.ErrSubscriptionNotFound) {
			s.logger.Warn("GetByID: subscription id=%d not found", id)
			return nil, ErrSubscriptionNotFound
		}
		s.logger.Error("GetByID: repository error for subscription id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSubscription(sub, s.timeProvider.Now()), nil
}
