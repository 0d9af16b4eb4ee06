package userservice

// Parent модель родителя из UserService
type Parent struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	City        *string `json:"city,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// Sitter модель ситтера из UserService
type Sitter struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"display_name"`
	HourlyRate  float64  `json:"hourly_rate"`
	Bio         string   `json:"bio"`
	Verified    bool     `json:"verified"`
	City        *string  `json:"city,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
