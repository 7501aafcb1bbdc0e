package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(timestamp, body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.%s", timestamp, body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test_secret"
	body := `{"type":"checkout.session.completed","data":{"object":{"metadata":{"lead_id":"btx-1"}}}}`
	ts := "1756600000"
	header := fmt.Sprintf("t=%s,v1=%s", ts, sign(ts, body, secret))

	assert.True(t, VerifySignature([]byte(body), header, secret))
}

func TestVerifySignatureTamperedBody(t *testing.T) {
	secret := "whsec_test_secret"
	body := `{"type":"checkout.session.completed"}`
	ts := "1756600000"
	header := fmt.Sprintf("t=%s,v1=%s", ts, sign(ts, body, secret))

	// flip a single character
	tampered := []byte(body)
	tampered[2] ^= 1
	assert.False(t, VerifySignature(tampered, header, secret))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	body := `{}`
	ts := "1756600000"
	header := fmt.Sprintf("t=%s,v1=%s", ts, sign(ts, body, "whsec_a"))

	assert.False(t, VerifySignature([]byte(body), header, "whsec_b"))
}

func TestVerifySignatureMalformedHeaders(t *testing.T) {
	body := []byte(`{}`)
	secret := "whsec_test_secret"

	for _, header := range []string{
		"",
		"garbage",
		"t=123",
		"v1=deadbeef",
		"t=,v1=",
		"t=123,v2=deadbeef",
	} {
		assert.False(t, VerifySignature(body, header, secret), "header %q", header)
	}
}

func TestParseSignatureHeader(t *testing.T) {
	sh, ok := ParseSignatureHeader("t=1756600000, v1=abcdef")
	assert.True(t, ok)
	assert.Equal(t, "1756600000", sh.Timestamp)
	assert.Equal(t, "abcdef", sh.V1)
}
