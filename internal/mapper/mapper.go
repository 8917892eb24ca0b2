// Package mapper converts persisted contact and color records to domain
// values and back. All functions are pure.
package mapper

import (
	"fmt"

	"github.com/heartmarshall/phonebook/internal/domain"
)

// ToDomain joins a contact record with its color.
// A record whose color is missing from colorsByID is a storage consistency
// violation and yields domain.ErrInconsistentState.
func ToDomain(rec domain.ContactRecord, colorsByID map[int64]domain.ColorRecord) (domain.Contact, error) {
	color, ok := colorsByID[rec.ColorID]
	if !ok {
		return domain.Contact{}, fmt.Errorf("contact %d references color %d: %w",
			rec.ID, rec.ColorID, domain.ErrInconsistentState)
	}

	checked := domain.CheckNone
	if rec.CanBeCheckedOff {
		checked = domain.CheckStateOf(rec.IsCheckedOff)
	}

	return domain.Contact{
		ID:          rec.ID,
		Name:        rec.Name,
		PhoneNumber: rec.PhoneNumber,
		Tag:         rec.Tag,
		Checked:     checked,
		Color:       ColorToDomain(color),
	}, nil
}

// ToDomainBatch maps records in order. The first failure aborts the batch.
func ToDomainBatch(recs []domain.ContactRecord, colorsByID map[int64]domain.ColorRecord) ([]domain.Contact, error) {
	contacts := make([]domain.Contact, 0, len(recs))
	for _, rec := range recs {
		c, err := ToDomain(rec, colorsByID)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// ToRecord converts a contact for create/update. An unsaved contact gets
// ID 0 so that storage assigns a fresh id. InTrash is always false: trash
// state never travels through this direction.
func ToRecord(c domain.Contact) domain.ContactRecord {
	rec := domain.ContactRecord{
		Name:            c.Name,
		PhoneNumber:     c.PhoneNumber,
		Tag:             c.Tag,
		CanBeCheckedOff: c.Checked.Checkable(),
		IsCheckedOff:    c.Checked.Checked(),
		ColorID:         c.Color.ID,
		InTrash:         false,
	}
	if !c.IsNew() {
		rec.ID = c.ID
	}
	return rec
}

// ColorToDomain converts a color record.
func ColorToDomain(rec domain.ColorRecord) domain.Color {
	return domain.Color{ID: rec.ID, Name: rec.Name, Hex: rec.Hex}
}

// ColorsToDomain converts color records in order.
func ColorsToDomain(recs []domain.ColorRecord) []domain.Color {
	colors := make([]domain.Color, len(recs))
	for i, rec := range recs {
		colors[i] = ColorToDomain(rec)
	}
	return colors
}

// IndexColors builds the id lookup used by ToDomain.
func IndexColors(recs []domain.ColorRecord) map[int64]domain.ColorRecord {
	byID := make(map[int64]domain.ColorRecord, len(recs))
	for _, rec := range recs {
		byID[rec.ID] = rec
	}
	return byID
}
