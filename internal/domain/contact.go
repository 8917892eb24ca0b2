package domain

// NewContactID marks a contact that has not been persisted yet.
const NewContactID int64 = -1

// Color is an entry of the fixed color palette.
type Color struct {
	ID   int64
	Name string
	Hex  string
}

// Contact is the domain view of a contact book entry.
// It is a comparable value: two contacts are equal when every field is equal.
type Contact struct {
	ID          int64
	Name        string
	PhoneNumber string
	Tag         string
	Checked     CheckState
	Color       Color
}

// NewContact returns an empty unsaved contact with the default color.
func NewContact() Contact {
	return Contact{
		ID:      NewContactID,
		Checked: CheckNone,
		Color:   DefaultColor,
	}
}

// IsNew reports whether the contact has no persisted counterpart yet.
func (c Contact) IsNew() bool {
	return c.ID == NewContactID
}

// ContactIDs returns the ids of contacts in order.
func ContactIDs(contacts []Contact) []int64 {
	ids := make([]int64, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	return ids
}

// ContactRecord is the persisted form of a contact.
// ID 0 means "not assigned yet": saving it inserts a new row.
type ContactRecord struct {
	ID              int64
	Name            string
	PhoneNumber     string
	Tag             string
	CanBeCheckedOff bool
	IsCheckedOff    bool
	ColorID         int64
	InTrash         bool
}

// ColorRecord is the persisted form of a palette color.
type ColorRecord struct {
	ID   int64
	Name string
	Hex  string
}
