package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Request authentication headers.
const (
	HeaderAppToken  = "X-App-Token"
	HeaderTimestamp = "X-App-Access-Ts"
	HeaderSignature = "X-App-Access-Sig"
)

// SignRequest returns the lowercase hex HMAC-SHA256 of
// ts || UPPER(method) || requestURI || body under secret.
func SignRequest(secret string, ts int64, method, requestURI string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(formatTS(ts)))
	mac.Write([]byte(strings.ToUpper(method)))
	mac.Write([]byte(requestURI))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature is the hex HMAC-SHA256 of payload
// under secret. Hex case is ignored and the digest compare is constant time.
// An empty secret never verifies.
func VerifySignature(payload []byte, signature, secret string) bool {
	if secret == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) != sha256.Size {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

func formatTS(ts int64) string {
	return strconv.FormatInt(ts, 10)
}
