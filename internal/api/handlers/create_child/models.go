package create_child

import (
	"fmt"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/internal/service/children/models"
)

// CreateChildRequest HTTP request model
type CreateChildRequest struct {
	Name        string  `json:"name"`
	Gender      *string `json:"gender,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // "2019-04-02"
	PhotoURL    *string `json:"photoUrl,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateChildRequest) ToServiceRequest(parentID int64) (*models.CreateChildRequest, error) {
	dateOfBirth, err := parseDateOfBirth(r.DateOfBirth)
	if err != nil {
		return nil, err
	}

	return &models.CreateChildRequest{
		ParentID:    parentID,
		Name:        r.Name,
		Gender:      r.Gender,
		DateOfBirth: dateOfBirth,
		PhotoURL:    r.PhotoURL,
		Notes:       r.Notes,
	}, nil
}

// parseDateOfBirth парсит опциональную дату рождения
func parseDateOfBirth(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(domain.DateFormat, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid dateOfBirth %q: %w", *value, err)
	}
	return &parsed, nil
}
