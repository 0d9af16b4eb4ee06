package get_session_request

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

type RequestService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.SessionRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
