package preview_schedule

import "errors"

var (
	// ErrInvalidMode возвращается при неизвестном режиме расписания
	ErrInvalidMode = errors.New("preview_schedule: invalid schedule mode")
)
