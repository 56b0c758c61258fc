package identity

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// checkPasswordPolicy requires a minimum length plus lowercase, uppercase and
// digit characters. Symbols are not required.
func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: Password not long enough", ErrInvalidPassword)
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !lower:
		return fmt.Errorf("%w: Password must have lowercase characters", ErrInvalidPassword)
	case !upper:
		return fmt.Errorf("%w: Password must have uppercase characters", ErrInvalidPassword)
	case !digit:
		return fmt.Errorf("%w: Password must have numeric characters", ErrInvalidPassword)
	}
	return nil
}

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func comparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
