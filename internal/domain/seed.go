package domain

// DefaultColor is the color given to new contacts.
var DefaultColor = Color{ID: 1, Name: "White", Hex: "#FFFFFF"}

// DefaultColors is the palette written to an empty color table.
var DefaultColors = []ColorRecord{
	{ID: 1, Name: "White", Hex: "#FFFFFF"},
	{ID: 2, Name: "Red", Hex: "#E57373"},
	{ID: 3, Name: "Pink", Hex: "#F06292"},
	{ID: 4, Name: "Purple", Hex: "#CE93D8"},
	{ID: 5, Name: "Deep Purple", Hex: "#B39DDB"},
	{ID: 6, Name: "Indigo", Hex: "#9FA8DA"},
	{ID: 7, Name: "Blue", Hex: "#64B5F6"},
	{ID: 8, Name: "Light Blue", Hex: "#4FC3F7"},
	{ID: 9, Name: "Cyan", Hex: "#4DD0E1"},
	{ID: 10, Name: "Teal", Hex: "#4DB6AC"},
	{ID: 11, Name: "Green", Hex: "#81C784"},
	{ID: 12, Name: "Light Green", Hex: "#AED581"},
	{ID: 13, Name: "Lime", Hex: "#DCE775"},
	{ID: 14, Name: "Yellow", Hex: "#FFF176"},
	{ID: 15, Name: "Amber", Hex: "#FFD54F"},
	{ID: 16, Name: "Orange", Hex: "#FFB74D"},
	{ID: 17, Name: "Deep Orange", Hex: "#FF8A65"},
	{ID: 18, Name: "Brown", Hex: "#A1887F"},
	{ID: 19, Name: "Gray", Hex: "#E0E0E0"},
	{ID: 20, Name: "Blue Gray", Hex: "#90A4AE"},
}

// DefaultContacts is the contact list written to an empty contact table.
var DefaultContacts = []ContactRecord{
	{ID: 1, Name: "Bob DoSomething", PhoneNumber: "0871234567", Tag: "Mobile", ColorID: 1},
	{ID: 2, Name: "Bills Gate", PhoneNumber: "1871234567", Tag: "Home", ColorID: 2},
	{ID: 3, Name: "Pancake Kem", PhoneNumber: "2871234567", Tag: "Work", ColorID: 3},
	{ID: 4, Name: "Work tilldie", PhoneNumber: "3871234567", Tag: "Mobile", ColorID: 4},
	{ID: 5, Name: "Tom Cruise", PhoneNumber: "4871234567", Tag: "Home", ColorID: 5},
	{ID: 6, Name: "Josh Wdish", PhoneNumber: "5871234567", Tag: "Work", CanBeCheckedOff: true, ColorID: 12},
}
