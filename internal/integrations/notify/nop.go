package notify

import "context"

// NopPublisher заглушка на случай отключенных уведомлений
// События логируются и отбрасываются
type NopPublisher struct {
	logger Logger
}

// NewNopPublisher создает publisher-заглушку
func NewNopPublisher(log Logger) *NopPublisher {
	return &NopPublisher{logger: log}
}

// PublishExpirationWarning логирует событие без публикации
func (p *NopPublisher) PublishExpirationWarning(_ context.Context, event ExpirationWarning) error {
	p.logger.Info("NopPublisher: expiration warning dropped (notifications disabled): contract=%d, days=%d",
		event.ContractID, event.DaysUntilExpiration)
	return nil
}
