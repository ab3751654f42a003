package contracts

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/domain"
)

// ContractRepository интерфейс репозитория договоров
type ContractRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Contract, error)
	UpdateAgreementStatus(ctx context.Context, tenantID, id int64, status domain.AgreementStatus) error
	UpdatePivotStatuses(ctx context.Context, contractID int64, status domain.PivotBookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
