package validation

// MissingFields returns the names from required whose value in fields
// is empty, preserving the order of required.
func MissingFields(required []string, fields map[string]string) []string {
	var missing []string
	for _, name := range required {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
