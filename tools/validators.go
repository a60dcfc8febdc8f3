package tools

import "regexp"

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// CheckPassword returns "password" when the password fails the minimum
// policy, "" when it is acceptable (mirrors the MissingFields convention).
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "password"
	}
	return ""
}
