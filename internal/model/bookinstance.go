package model

import "time"

// BookInstanceStatus is the availability of a physical copy
type BookInstanceStatus string

const (
	StatusAvailable   BookInstanceStatus = "Available"
	StatusMaintenance BookInstanceStatus = "Maintenance"
	StatusLoaned      BookInstanceStatus = "Loaned"
	StatusReserved    BookInstanceStatus = "Reserved"
)

// DefaultBookInstanceStatus is assigned when a copy is created without a status
const DefaultBookInstanceStatus = StatusMaintenance

// BookInstanceStatuses lists every status in display order
func BookInstanceStatuses() []BookInstanceStatus {
	return []BookInstanceStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}
}

// IsValid reports whether s is one of the known statuses
func (s BookInstanceStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// BookInstance represents one physical copy of a book
type BookInstance struct {
	ID      string             `json:"id"`
	BookID  string             `json:"book"`
	Imprint string             `json:"imprint"`
	Status  BookInstanceStatus `json:"status"`
	DueBack time.Time          `json:"due_back"`

	Book *Book `json:"-"`
}

// URL returns the canonical location of the copy's detail page
func (bi *BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// DueBackFormatted returns the due date for display
func (bi *BookInstance) DueBackFormatted() string {
	return FormatDate(&bi.DueBack)
}

// DueBackInput returns the due date as a form value (YYYY-MM-DD)
func (bi *BookInstance) DueBackInput() string {
	return FormatInputDate(&bi.DueBack)
}
