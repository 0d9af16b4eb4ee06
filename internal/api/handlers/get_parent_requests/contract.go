package get_parent_requests

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/service/requests/models"
)

type RequestService interface {
	GetParentRequests(ctx context.Context, req *models.GetParentRequestsRequest) (*models.SessionRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
