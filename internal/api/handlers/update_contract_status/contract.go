package update_contract_status

import (
	"context"

	"github.com/adstack-mw/billboard-service/internal/service/contracts/models"
)

type ContractsService interface {
	UpdateStatus(ctx context.Context, contractID int64, req *models.UpdateStatusRequest) (*models.ContractResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
