package helper

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSecret menghasilkan secret acak url-safe (n byte entropi).
func GenerateSecret(n int) (string, error) {
	if n <= 0 {
		n = 24
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashSecret meng-hash secret dengan bcrypt (plaintext tidak disimpan di server).
func HashSecret(plain string) (string, error) {
	// JANGAN lower(); bcrypt case-sensitive
	plain = strings.TrimSpace(plain)
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareSecret mencocokkan plaintext dengan hash tersimpan.
func CompareSecret(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(strings.TrimSpace(plain))) == nil
}
