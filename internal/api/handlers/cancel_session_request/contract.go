package cancel_session_request

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

type RequestService interface {
	Cancel(ctx context.Context, requestID int64, req *models.CancelRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
