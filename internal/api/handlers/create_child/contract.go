package create_child

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

type ChildService interface {
	Create(ctx context.Context, req *models.CreateChildRequest) (*models.ChildResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
