package delete_child

import "context"

type ChildService interface {
	Delete(ctx context.Context, id int64, parentID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
