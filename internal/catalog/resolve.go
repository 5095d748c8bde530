package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	reAbsoluteURL  = regexp.MustCompile(`(?i)^https?://`)
	reAbsoluteBase = regexp.MustCompile(`(?i)^(https?:)?//`)
)

// apiOrigin derives scheme://host from an absolute base URL. Relative bases
// such as a dev proxy prefix have no origin.
func apiOrigin(base string) string {
	if !reAbsoluteBase.MatchString(base) {
		return ""
	}
	abs := base
	if strings.HasPrefix(abs, "//") {
		abs = "https:" + abs
	}
	u, err := url.Parse(abs)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	port := u.Port()
	if (u.Scheme == "https" && port == "443") || (u.Scheme == "http" && port == "80") {
		host = strings.TrimSuffix(host, ":"+port)
	}
	return u.Scheme + "://" + host
}

// ResolveAssetURL makes an asset reference directly loadable by a browser.
// It returns "" for blank input so the caller can omit the field.
func (n *Normalizer) ResolveAssetURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if reAbsoluteURL.MatchString(v) {
		return v
	}
	if strings.HasPrefix(v, "//") {
		return "https:" + v
	}
	if strings.HasPrefix(v, "/") {
		if n.origin != "" {
			return n.origin + v
		}
		return n.baseURL + v
	}
	if n.origin != "" {
		return n.origin + "/" + v
	}
	if n.baseURL == "" {
		return "/" + v
	}
	return n.baseURL + "/" + v
}
