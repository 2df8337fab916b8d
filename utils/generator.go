package utils

import (
	"math/rand"
	"time"
)

const codeLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueCode returns prefix followed by random letters and digits,
// retrying until taken reports the code as free.
func GenerateUniqueCode(prefix string, taken func(string) bool) string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := prefix + string(b)
		if !taken(code) {
			return code
		}
	}
}
