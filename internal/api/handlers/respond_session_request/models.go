package respond_session_request

// RespondSessionRequestRequest HTTP request model
type RespondSessionRequestRequest struct {
	Accept bool `json:"accept"`
}
