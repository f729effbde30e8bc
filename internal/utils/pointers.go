package utils

// NullableString maps "" to a nil pointer so empty form fields land as
// SQL NULL instead of empty strings.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
