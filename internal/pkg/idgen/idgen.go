package idgen

import (
	"crypto/rand"
	"math/big"
)

// Generator produces account numbers, card numbers and card secrets.
// Injected wherever records need fresh identifiers so that tests can
// substitute a deterministic implementation.
type Generator interface {
	AccountNumber() string
	CardNumber() string
	CVV() string
	PIN() string
}

type randomGenerator struct{}

func NewGenerator() Generator {
	return &randomGenerator{}
}

func (randomGenerator) AccountNumber() string {
	return digits(12)
}

func (randomGenerator) CardNumber() string {
	return digits(16)
}

func (randomGenerator) CVV() string {
	return digits(3)
}

func (randomGenerator) PIN() string {
	return digits(4)
}

func digits(n int) string {
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			out[i] = '0'
			continue
		}
		out[i] = byte('0' + v.Int64())
	}
	return string(out)
}
