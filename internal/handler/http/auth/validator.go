package auth

import (
	"fmt"
	"os"
	"strings"
)

const minPasswordLength = 12

var weakPasswordList = []string{
	"admin", "password", "123456", "secret", "qwerty", "letmein",
	"welcome", "default", "root", "test", "senha", "ajuda",
}

var keyboardPatterns = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm", "qwerty", "asdfgh"}

// ValidateAdminCredentials checks ADMIN_USER, ADMIN_USER_PASSWORD and JWT_SECRET
// at startup. The API refuses to start with empty or guessable values.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")
	secret := os.Getenv("JWT_SECRET")

	switch {
	case user == "":
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	case pass == "":
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	case len(pass) < minPasswordLength:
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must be at least %d characters", minPasswordLength)
	case isRepeatedChar(pass) || isDigitSequence(pass):
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a simple pattern")
	case isKeyboardPattern(pass):
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be a keyboard pattern")
	case len(secret) < 32:
		return fmt.Errorf("admin credentials validation failed: JWT_SECRET must be at least 32 characters")
	}

	lower := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		// "admin1234567890" is still a weak password
		if lower == weak || (strings.HasPrefix(lower, weak) && len(pass) < minPasswordLength+5) {
			return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be based on common weak passwords")
		}
	}
	return nil
}

func isRepeatedChar(pass string) bool {
	for i := 1; i < len(pass); i++ {
		if pass[i] != pass[0] {
			return false
		}
	}
	return len(pass) > 0
}

// isDigitSequence reports ascending or descending runs like 123456789012.
func isDigitSequence(pass string) bool {
	asc, desc := true, true
	for i := 0; i < len(pass); i++ {
		if pass[i] < '0' || pass[i] > '9' {
			return false
		}
		if i == 0 {
			continue
		}
		diff := int(pass[i]) - int(pass[i-1])
		if diff != 1 && diff != -9 {
			asc = false
		}
		if diff != -1 && diff != 9 {
			desc = false
		}
	}
	return asc || desc
}

func isKeyboardPattern(pass string) bool {
	lower := strings.ToLower(pass)
	for _, p := range keyboardPatterns {
		if strings.Contains(lower, p) || strings.Contains(lower, reverse(p)) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
