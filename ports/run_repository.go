package ports

import (
	"context"

	"gobenford/domain/benford"
	"gobenford/domain/core"
)

// RunRepository stores completed analysis runs
type RunRepository interface {
	SaveRun(ctx context.Context, run *benford.Run) error
	GetRun(ctx context.Context, id core.ID) (*benford.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*benford.Run, error)
}
