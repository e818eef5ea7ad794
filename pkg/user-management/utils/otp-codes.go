package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const OTP_CODE_LENGTH = 4

// GenerateOTPCode generates a random numeric OTP code of the given length,
// leading zeros preserved. Rejection-free uniform sampling from crypto/rand,
// so codes are not predictable from timing or sequence.
func GenerateOTPCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid OTP code length %d", length)
	}

	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
