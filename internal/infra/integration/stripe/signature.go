// Package stripe implements the payment provider's webhook envelope and
// signature scheme.
package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader is the parsed form of "t={timestamp},v1={hex-hmac}".
type SignatureHeader struct {
	Timestamp string
	V1        string
}

// ParseSignatureHeader splits the loosely delimited header into a strict
// structure. Both t and v1 must be present.
func ParseSignatureHeader(header string) (SignatureHeader, bool) {
	var sh SignatureHeader
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			sh.Timestamp = v
		case "v1":
			sh.V1 = v
		}
	}
	if sh.Timestamp == "" || sh.V1 == "" {
		return SignatureHeader{}, false
	}
	return sh, true
}

// VerifySignature checks the HMAC-SHA256 of "{timestamp}.{rawBody}" against
// the v1 value in the header. Returns false, never an error, on malformed
// input. Comparison is constant-time.
func VerifySignature(rawBody []byte, sigHeader, secret string) bool {
	sh, ok := ParseSignatureHeader(sigHeader)
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sh.Timestamp))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sh.V1))
}
