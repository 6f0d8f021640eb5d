package mailer

import (
	"crypto/rand"
	"math/big"
)

// GenerateCode returns a 4-digit numeric verification code.
func GenerateCode() string {
	digits := make([]byte, 4)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand is unavailable only in broken environments
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}
