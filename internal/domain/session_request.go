package domain

import "time"

// RequestStatus represents the status of a session request
type RequestStatus string

const (
	StatusRequested         RequestStatus = "requested"
	StatusAccepted          RequestStatus = "accepted"
	StatusDeclined          RequestStatus = "declined"
	StatusCancelledByParent RequestStatus = "cancelled_by_parent"
	StatusCancelledBySitter RequestStatus = "cancelled_by_sitter"
	StatusCompleted         RequestStatus = "completed"
	StatusExpired           RequestStatus = "expired"
)

// SearchScope determines which sitters can see a session request
type SearchScope string

const (
	ScopeInvite     SearchScope = "invite"
	ScopeNearby     SearchScope = "nearby"
	ScopeCity       SearchScope = "city"
	ScopeNationwide SearchScope = "nationwide"
)

// IsValid returns true if the scope is one of the known values
func (s SearchScope) IsValid() bool {
	switch s {
	case ScopeInvite, ScopeNearby, ScopeCity, ScopeNationwide:
		return true
	default:
		return false
	}
}

// Location is a resolved sitting location.
// City and coordinates are optional: geocoding is best-effort
type Location struct {
	Address   string
	City      *string
	Latitude  *float64
	Longitude *float64
}

// HasCoordinates returns true if both latitude and longitude are present
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// RequestTimeSlot is one configured per-day window of a slotted request
type RequestTimeSlot struct {
	Date      string    `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Hours     float64   `json:"hours"`
}

// SessionRequest represents a parent's request for a sitter to watch
// one or more children over a time window
type SessionRequest struct {
	ID       int64
	Token    string // public UUID exposed to clients
	ParentID int64
	SitterID *int64 // set for invites and after a broadcast is accepted

	ChildID  int64   // primary child, kept for backward compatibility
	ChildIDs []int64 // all children covered by the request

	Status RequestStatus

	StartTime  time.Time
	EndTime    time.Time
	TotalHours float64

	Location      Location
	HourlyRate    float64 // meaningful only for invites, 0 otherwise
	Notes         *string
	SearchScope   SearchScope
	MaxDistanceKm *float64

	// Per-day windows for slotted requests; nil for continuous requests
	TimeSlots []RequestTimeSlot

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the request is in an active state
func (r *SessionRequest) IsActive() bool {
	return r.Status == StatusRequested || r.Status == StatusAccepted
}

// IsBroadcast returns true if the request is visible to a pool of sitters
// rather than addressed to one specific sitter
func (r *SessionRequest) IsBroadcast() bool {
	return r.SearchScope != ScopeInvite
}

// CanBeCancelled returns true if the request can still be cancelled
func (r *SessionRequest) CanBeCancelled() bool {
	return r.Status == StatusRequested || r.Status == StatusAccepted
}

// CanBeAnswered returns true if a sitter can still accept or decline the request
func (r *SessionRequest) CanBeAnswered() bool {
	return r.Status == StatusRequested
}

// IsCancelled returns true if the request has been cancelled by either side
func (r *SessionRequest) IsCancelled() bool {
	return r.Status == StatusCancelledByParent || r.Status == StatusCancelledBySitter
}

// ParentRequestsFilter фильтр для получения запросов родителя
type ParentRequestsFilter struct {
	ParentID        int64          // Обязательный параметр
	Status          *RequestStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные запросы (отклонённые, отменённые, истёкшие)
}

// SitterInboxFilter фильтр для входящих запросов ситтера
type SitterInboxFilter struct {
	SitterID int64 // Обязательный параметр
}
