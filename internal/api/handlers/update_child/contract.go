package update_child

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

type ChildService interface {
	Update(ctx context.Context, id int64, req *models.UpdateChildRequest) (*models.ChildResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
