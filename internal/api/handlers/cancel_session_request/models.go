package cancel_session_request

// CancelSessionRequestRequest HTTP request model
type CancelSessionRequestRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}
