package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator produces one-time verification codes.
type Generator interface {
	// Generate returns a new code.
	Generate() (string, error)
}

// Numeric generates six-digit codes using crypto/rand.
//
// Codes are drawn uniformly from [100000, 999999] so they never carry a
// leading zero and survive naive numeric round-trips on clients.
type Numeric struct{}

// NewNumeric returns a six-digit code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a new six-digit code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v.Int64()+100000, 10), nil
}
