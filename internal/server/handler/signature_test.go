package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"action":"opened"}`)

	tests := []struct {
		name   string
		secret string
		header string
		want   bool
	}{
		{"valid signature", "s3cret", sign("s3cret", body), true},
		{"wrong secret", "s3cret", sign("other", body), false},
		{"missing prefix", "s3cret", "deadbeef", false},
		{"empty header", "s3cret", "", false},
		{"tampered body signature", "s3cret", sign("s3cret", []byte("other body")), false},
		{"empty secret disables verification", "", "", true},
		{"empty secret ignores bogus header", "", "sha256=bogus", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifySignature(tc.secret, body, tc.header))
		})
	}
}
