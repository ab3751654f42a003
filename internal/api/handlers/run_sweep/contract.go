package run_sweep

import (
	"context"

	runSweep "github.com/adstack-mw/billboard-service/internal/usecase/run_sweep"
)

type RunSweepUseCase interface {
	Execute(ctx context.Context, req *runSweep.Request) (*runSweep.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
