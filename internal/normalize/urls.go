package normalize

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether raw parses as an absolute http(s) URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// URL strips the fragment and any trailing slash so equivalent seed URLs
// collapse to one form. It is idempotent and returns malformed input
// unchanged.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// Domain extracts the registrable hostname: lowercased, "www." stripped.
// Malformed URLs yield the empty string.
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// Resolve makes ref absolute against base. Unresolvable refs become the
// empty string; link consumers treat that as "no link" silently.
func Resolve(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}
