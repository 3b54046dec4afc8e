package hero

import (
	"fmt"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

// ValidateName checks a player-supplied hero name: 3-30 characters of
// letters, digits, spaces, hyphens, and underscores.
//
// Postcondition: returns nil iff the name passes all checks; the error
// message names the violated rule.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("hero name is required")
	}
	if len(name) < 3 || len(name) > 30 {
		return fmt.Errorf("hero name must be between 3 and 30 characters")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("hero name can only contain letters, numbers, spaces, hyphens, and underscores")
	}
	return nil
}
