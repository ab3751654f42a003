package get_occupancy

import (
	"context"

	getOccupancy "github.com/adstack-mw/billboard-service/internal/usecase/get_occupancy"
)

type GetOccupancyUseCase interface {
	Execute(ctx context.Context, req *getOccupancy.Request) (*getOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
