package model

import "time"

// Author represents a person who wrote one or more books
type Author struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

// Author constraints
const (
	MaxAuthorNameLength = 100
)

// Name returns "first family", or an empty string when either part is missing
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FirstName + " " + a.FamilyName
}

// URL returns the canonical location of the author's detail page
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID
}

// DateOfBirthFormatted returns the birth date for display, or "unknown"
func (a *Author) DateOfBirthFormatted() string {
	return FormatDate(a.DateOfBirth)
}

// DateOfDeathFormatted returns the death date for display, or "unknown"
func (a *Author) DateOfDeathFormatted() string {
	return FormatDate(a.DateOfDeath)
}

// Lifespan returns "birth - death" using the display formats
func (a *Author) Lifespan() string {
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

// DateOfBirthInput returns the birth date as a form value (YYYY-MM-DD)
func (a *Author) DateOfBirthInput() string {
	return FormatInputDate(a.DateOfBirth)
}

// DateOfDeathInput returns the death date as a form value (YYYY-MM-DD)
func (a *Author) DateOfDeathInput() string {
	return FormatInputDate(a.DateOfDeath)
}
