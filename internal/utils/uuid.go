package utils

import "regexp"

// canonical 8-4-4-4-12 form, case-insensitive
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func IsValidUUID(value string) bool {
	return uuidPattern.MatchString(value)
}

// SanitizeUUID returns value unchanged (case preserved) when it is a canonical
// UUID, else the empty string. Optional foreign-key fields sometimes arrive
// holding UI sentinels like "credit"; those must become NULL, not an insert
// error.
func SanitizeUUID(value string) string {
	if IsValidUUID(value) {
		return value
	}

	return ""
}
