package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const signaturePrefix = "sha256="

// VerifySignature checks a webhook body against its X-Hub-Signature-256
// header. An empty secret disables verification entirely and every payload
// passes. Comparison is constant time.
func VerifySignature(secret string, body []byte, signatureHeader string) bool {
	if secret == "" {
		return true
	}
	if !strings.HasPrefix(signatureHeader, signaturePrefix) {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.TrimPrefix(signatureHeader, signaturePrefix)))
}
