package update_child

import (
	"fmt"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

// UpdateChildRequest HTTP request model
type UpdateChildRequest struct {
	Name        string  `json:"name"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // "2019-04-02"
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateChildRequest) ToServiceRequest(parentID int64) (*models.UpdateChildRequest, error) {
	var dateOfBirth *time.Time
	if r.DateOfBirth != nil && *r.DateOfBirth != "" {
		parsed, err := time.Parse(domain.DateFormat, *r.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid dateOfBirth %q: %w", *r.DateOfBirth, err)
		}
		dateOfBirth = &parsed
	}

	return &models.UpdateChildRequest{
		ParentID:    parentID,
		Name:        r.Name,
		Gender:      r.Gender,
		DateOfBirth: dateOfBirth,
		PhotoURL:    r.PhotoURL,
		Notes:       r.Notes,
	}, nil
}
