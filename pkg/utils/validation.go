package utils

import "regexp"

var deviceUID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,127}$`)

// IsDeviceUID reports whether id looks like a device uid as written by the
// benchmark clients: up to 128 letters, digits, dots, colons, dashes or
// underscores.
func IsDeviceUID(id string) bool {
	return deviceUID.MatchString(id)
}
