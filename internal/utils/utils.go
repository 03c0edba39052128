package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeTarget prepares a user-supplied target for probing. Input without
// an http:// or https:// prefix gets https:// prepended, the host is
// lowercased and IDNA-encoded, and default ports are stripped.
//
// The function never fails: input that does not parse is returned with the
// scheme prefix applied and left for the fetch step to reject.
func NormalizeTarget(raw string) (target string, isHTTPS bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw, strings.HasPrefix(raw, "https://")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = normalizeHost(u.Scheme, u.Host)

	return u.String(), u.Scheme == "https"
}

// normalizeHost lowercases the host, converts unicode hostnames to their
// IDNA ASCII form, and drops the default port for the scheme.
func normalizeHost(scheme, host string) string {
	host = strings.ToLower(host)

	// IPv6 literals keep their brackets and port untouched.
	if strings.Contains(host, "]") {
		return host
	}

	hostname, port := host, ""
	if h, p, ok := strings.Cut(host, ":"); ok {
		hostname, port = h, p
	}

	if ascii, err := idna.Lookup.ToASCII(hostname); err == nil && ascii != "" {
		hostname = ascii
	}

	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	if port != "" {
		return hostname + ":" + port
	}
	return hostname
}
