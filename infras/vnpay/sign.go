package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const (
	paramPrefix     = "vnp_"
	paramSecureHash = "vnp_SecureHash"
	paramHashType   = "vnp_SecureHashType"
)

// canonical renders the vnp_* parameters sorted by key, URL-encoded, joined with '&'.
// Hash fields and empty values are left out.
func canonical(params url.Values) string {
	keys := make([]string, 0, len(params))

	for key := range params {
		if !strings.HasPrefix(key, paramPrefix) || key == paramSecureHash || key == paramHashType {
			continue
		}

		if params.Get(key) == "" {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	var b strings.Builder

	for i, key := range keys {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}

	return b.String()
}

func mac(secret, data string) []byte {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(data))

	return h.Sum(nil)
}

func sign(secret, data string) string {
	return hex.EncodeToString(mac(secret, data))
}

func verify(secret, data, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(mac(secret, data), got)
}
