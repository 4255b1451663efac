package util

import (
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidateName(name string) bool {
	return len(name) >= 1 && len(name) <= 100
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}
