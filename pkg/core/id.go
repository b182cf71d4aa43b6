package core

// ValidateID checks that id is non-empty and only uses [0-9A-Za-z_].
func ValidateID(id string) (string, error) {
	if id == "" {
		return "", &InvalidIDError{ID: id}
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '_':
		default:
			return "", &InvalidIDError{ID: id}
		}
	}
	return id, nil
}
