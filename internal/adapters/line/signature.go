package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrSignatureMissing = errors.New("signature is empty")
	ErrSignatureInvalid = errors.New("signature mismatch")
)

// SignatureVerifier valida X-Line-Signature: base64(HMAC-SHA256(channelSecret, body)).
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(channelSecret string) *SignatureVerifier {
	return &SignatureVerifier{secret: []byte(strings.TrimSpace(channelSecret))}
}

func (v *SignatureVerifier) Verify(body []byte, signature string) error {
	if v == nil || len(v.secret) == 0 {
		return ErrLineNotConfigured
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrSignatureMissing
	}

	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrSignatureInvalid
	}
	if !hmac.Equal(got, Sign(v.secret, body)) {
		return ErrSignatureInvalid
	}
	return nil
}

// Sign calcula la firma cruda; la usan los tests y herramientas locales.
func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}
