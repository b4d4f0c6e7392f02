package membership

import (
	"math/rand"
	"strconv"
	"strings"
)

const (
	passwordMinLength = 7
	passwordMaxLength = 32
)

// weakPasswordMessage is shown to members whose password fails the policy.
const weakPasswordMessage = "The password entered does not meet our password policy. Passwords must now be a combination of letters and at least 1 number at a minimum of 7 characters."

// IsPasswordStrong reports whether a password meets the policy: 7 to 32
// characters mixing at least one digit with at least one lowercase or one
// uppercase letter. When the password is weak it also returns the
// customer-facing policy message.
func IsPasswordStrong(password string) (bool, string) {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return false, weakPasswordMessage
	}
	var lower, upper, digit bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	if digit && (lower || upper) {
		return true, ""
	}
	return false, weakPasswordMessage
}

const (
	passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	passwordLetters  = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
)

// GeneratePassword returns a random password of six alphanumeric characters
// followed by a two digit number, satisfying the password policy. The first
// character is always a letter so the letter-plus-digit rule holds.
func GeneratePassword() string {
	var b strings.Builder
	b.WriteByte(passwordLetters[rand.Intn(len(passwordLetters))])
	for i := 0; i < 5; i++ {
		b.WriteByte(passwordAlphabet[rand.Intn(len(passwordAlphabet))])
	}
	b.WriteString(strconv.Itoa(10 + rand.Intn(90)))
	return b.String()
}
