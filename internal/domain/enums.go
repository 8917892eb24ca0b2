package domain

// CheckState is the tri-state checkbox of a contact: not checkable,
// checkable and unchecked, checkable and checked.
type CheckState uint8

const (
	CheckNone CheckState = iota
	CheckOff
	CheckOn
)

// CheckStateOf returns the checkable state matching checked.
func CheckStateOf(checked bool) CheckState {
	if checked {
		return CheckOn
	}
	return CheckOff
}

// Checkable reports whether the contact carries a checkbox at all.
func (s CheckState) Checkable() bool { return s == CheckOff || s == CheckOn }

// Checked reports whether the checkbox is ticked. Always false for CheckNone.
func (s CheckState) Checked() bool { return s == CheckOn }

// Toggle flips a checkable state. CheckNone stays CheckNone.
func (s CheckState) Toggle() CheckState {
	switch s {
	case CheckOff:
		return CheckOn
	case CheckOn:
		return CheckOff
	}
	return CheckNone
}

func (s CheckState) String() string {
	switch s {
	case CheckOff:
		return "UNCHECKED"
	case CheckOn:
		return "CHECKED"
	}
	return "NONE"
}

// Screen is one of the three screens of the contact book.
type Screen string

const (
	ScreenList  Screen = "LIST"
	ScreenEdit  Screen = "EDIT"
	ScreenTrash Screen = "TRASH"
)

func (s Screen) String() string { return string(s) }

func (s Screen) IsValid() bool {
	switch s {
	case ScreenList, ScreenEdit, ScreenTrash:
		return true
	}
	return false
}
