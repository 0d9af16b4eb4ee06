package get_sitter_inbox

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

type RequestService interface {
	GetSitterInbox(ctx context.Context, req *models.GetSitterInboxRequest) (*models.SessionRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
