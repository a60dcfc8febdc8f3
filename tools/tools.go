package tools

import (
	"crypto/sha512"
	"encoding/hex"
	"math/rand"
	"time"
)

// Access codes avoid 0/O and 1/l/I so they survive being read over the phone.
const accessCodeAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// HashSHA512 returns the hex-encoded SHA-512 digest of text.
func HashSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RandomAccessCode generates a customer portal access code.
func RandomAccessCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = accessCodeAlphabet[seededRand.Intn(len(accessCodeAlphabet))]
	}
	return string(b)
}
