package validator

import (
	"net/mail"
	"net/url"
	"strings"
)

// Email fails for anything but a bare address such as "user@example.com".
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value || addr.Name != "" {
				return false
			}
			at := strings.LastIndexByte(value, '@')
			return at > 0 && strings.Contains(value[at+1:], ".")
		},
		Error: newError(field, "must be a valid email address", "validation.email", nil),
	}
}

// URL fails unless value is an absolute http or https URL.
func URL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.ParseRequestURI(value)
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		},
		Error: newError(field, "must be a valid URL", "validation.url", nil),
	}
}
