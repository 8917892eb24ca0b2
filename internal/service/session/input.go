package session

import (
	"unicode"

	"github.com/heartmarshall/phonebook/internal/domain"
)

// DraftInput holds the fields of a draft that must be valid before it is saved.
type DraftInput struct {
	Name        string
	PhoneNumber string
	Tag         string
}

func draftInput(c domain.Contact) DraftInput {
	return DraftInput{Name: c.Name, PhoneNumber: c.PhoneNumber, Tag: c.Tag}
}

// Validate checks all fields and collects all errors.
func (i DraftInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.PhoneNumber == "" {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "required"})
	} else if !digitsOnly(i.PhoneNumber) {
		errs = append(errs, domain.FieldError{Field: "phone_number", Message: "must contain only digits"})
	}
	if i.Tag == "" {
		errs = append(errs, domain.FieldError{Field: "tag", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
