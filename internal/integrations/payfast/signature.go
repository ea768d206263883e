package payfast

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Sign считает подпись: непустые поля (кроме signature) по алфавиту,
// key=QueryEscape(value) через "&", затем passphrase, md5 в hex
func Sign(values url.Values, passphrase string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == FieldSignature || values.Get(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, k+"="+url.QueryEscape(strings.TrimSpace(values.Get(k))))
	}
	if passphrase != "" {
		parts = append(parts, FieldPassphrase+"="+url.QueryEscape(strings.TrimSpace(passphrase)))
	}

	return md5Hex(strings.Join(parts, "&"))
}

// VerifySignature сверяет поле signature с подписью остальных полей
func VerifySignature(values url.Values, passphrase string) bool {
	got := values.Get(FieldSignature)
	if got == "" {
		return false
	}
	return strings.EqualFold(got, Sign(values, passphrase))
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
