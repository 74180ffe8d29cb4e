package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const codePrefix = "LB-"

// NewCode returns a short human readable order code such as LB-3FA9C.
func NewCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate order code: %w", err)
	}
	return codePrefix + strings.ToUpper(hex.EncodeToString(b)[:5]), nil
}
