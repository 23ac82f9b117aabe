package utils

import "crypto/rand"

// GenerateRandomToken returns a reset code drawn from crypto/rand; these
// codes gate password changes, so they must not be guessable.
func GenerateRandomToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // the OS entropy source is gone; nothing sensible to do
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}
	return string(buf)
}
