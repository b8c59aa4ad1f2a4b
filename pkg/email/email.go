// Package email derives presentable identity fields from an email address.
// The audit trail records a user name even when the identity provider returns
// no display name, so the local part of the address is the fallback source.
package email

import (
	"strings"
	"unicode"
)

// DisplayName builds a human-readable name from the local part of an email
// address: "jane.doe@example.com" becomes "Jane Doe". Addresses with no
// usable local part yield "User".
func DisplayName(address string) string {
	local := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		local = address[:at]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}

	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
