package models

// Field limits shared by every layer that validates. The validator struct tags
// mirror these values; service-level checks must reference the constants.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxProductNameLength = 100
	MaxNotesLength       = 200
	MaxItemsPerList      = 100

	ShoppingDateLayout = "2006-01-02"

	ShareCodeLength = 4
)

// Units accepted for a shopping-list item.
var Units = []string{"un", "kg", "g", "l", "ml", "cx", "pct"}

func IsValidUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}

	return false
}
