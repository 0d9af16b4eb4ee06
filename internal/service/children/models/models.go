package models

import (
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// Request модели

// CreateChildRequest запрос на создание детской записи
type CreateChildRequest struct {
	ParentID    int64      `json:"parentId"`
	Name        string     `json:"name"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	PhotoURL    *string    `json:"photoUrl,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// UpdateChildRequest запрос на обновление детской записи
type UpdateChildRequest struct {
	ParentID    int64      `json:"parentId"`
	Name        string     `json:"name"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	PhotoURL    *string    `json:"photoUrl,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// Response модели

// ChildResponse ответ с данными детской записи
type ChildResponse struct {
	ID          int64      `json:"id"`
	ParentID    int64      `json:"parentId"`
	Name        string     `json:"name"`
	Gender      *string    `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Age         *int       `json:"age,omitempty"` // Полных лет на момент ответа
	PhotoURL    *string    `json:"photoUrl,omitempty"`
	Notes       *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChildListResponse ответ со списком детских записей
type ChildListResponse struct {
	Children []ChildResponse `json:"children"`
}

// Методы конвертации

// FromDomainChild конвертирует domain модель в DTO
func FromDomainChild(c *domain.Child, now time.Time) *ChildResponse {
	if c == nil {
		return nil
	}

	return &ChildResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Gender:      c.Gender,
		DateOfBirth: c.DateOfBirth,
		Age:         c.Age(now),
		PhotoURL:    c.PhotoURL,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainChildList конвертирует список domain моделей в DTO
func FromDomainChildList(children []*domain.Child, now time.Time) *ChildListResponse {
	list := make([]ChildResponse, 0, len(children))
	for _, c := range children {
		list = append(list, *FromDomainChild(c, now))
	}
	return &ChildListResponse{Children: list}
}
