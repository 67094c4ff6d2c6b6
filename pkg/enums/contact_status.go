package enums

import "fmt"

// ContactStatus tracks the triage state of a contact-form message.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
	ContactStatusClosed  ContactStatus = "closed"
)

var validContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusClosed,
}

// IsValid reports whether the value is a known ContactStatus.
func (c ContactStatus) IsValid() bool {
	for _, candidate := range validContactStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseContactStatus converts raw input into a ContactStatus.
func ParseContactStatus(value string) (ContactStatus, error) {
	for _, candidate := range validContactStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact status %q", value)
}
