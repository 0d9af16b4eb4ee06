package get_parent_children

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

type ChildService interface {
	GetParentChildren(ctx context.Context, parentID int64) (*models.ChildListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
