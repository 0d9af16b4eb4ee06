package create_session_request

import (
	"context"

	createRequest "github.com/ovchr/BSM-SessionService/internal/usecase/create_session_request"
)

type CreateSessionRequestUseCase interface {
	Execute(ctx context.Context, req *createRequest.Request) (*createRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
