package domain

import "time"

// Child represents a child record owned by a parent
type Child struct {
	ID          int64
	ParentID    int64
	Name        string
	Gender      *string
	DateOfBirth *time.Time
	PhotoURL    *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Age returns the child's age in full years at the given moment,
// nil if the date of birth is unknown
func (c *Child) Age(now time.Time) *int {
	if c.DateOfBirth == nil {
		return nil
	}

	years := now.Year() - c.DateOfBirth.Year()

	// Birthday not reached yet this year
	anniversary := c.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}

	if years < 0 {
		years = 0
	}
	return &years
}
