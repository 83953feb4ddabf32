package link

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNotResolvable is returned by Resolve for links that carry no
// crawlable target: empty strings and fragment-only references.
// Callers skip these without counting them as malformed.
var ErrNotResolvable = errors.New("link has no crawlable target")

// Resolve turns a raw href into an absolute URL. Rules, in order:
//
//  1. Empty or fragment-only ("#...") links are not resolvable.
//  2. Protocol-relative links ("//host/...") get the base's scheme.
//  3. Root-relative links ("/path") are prefixed with the base's
//     domain string (see DomainOf).
//  4. Anything else is resolved against the base by the standard URL
//     resolution rules, which also passes absolute links through.
//
// A malformed link after these rewrites returns an error; callers count
// it as a bad link and continue, never abort.
func Resolve(raw string, base *url.URL) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return nil, ErrNotResolvable
	}

	switch {
	case strings.HasPrefix(raw, "//"):
		raw = base.Scheme + ":" + raw
	case strings.HasPrefix(raw, "/"):
		raw = DomainOf(base) + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed link %q: %w", raw, err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" {
		return nil, fmt.Errorf("link %q resolved without a scheme", raw)
	}
	return resolved, nil
}

// DomainOf returns the domain string of an address: scheme plus
// authority for network URLs. Addresses without an authority (file-style
// test URLs) fall back to a pseudo-domain derived from the path up to
// its last slash, so that root-relative links on such pages still
// resolve next to the page.
func DomainOf(u *url.URL) string {
	if u.Host != "" {
		return u.Scheme + "://" + u.Host
	}

	path := u.Path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[:idx]
	}
	return u.Scheme + ":" + path
}

// Ext returns the lower-cased extension of the last path segment:
// the substring after its final dot, or "" when the segment has none.
func Ext(u *url.URL) string {
	segment := u.Path
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}

	dot := strings.LastIndex(segment, ".")
	if dot < 0 || dot == len(segment)-1 {
		return ""
	}
	return strings.ToLower(segment[dot+1:])
}

// SameHost reports whether two addresses share a host. Hosts are
// compared case-insensitively; two authority-less addresses (both with
// empty hosts) compare equal, matching how file-style test pages link
// to each other.
func SameHost(a, b *url.URL) bool {
	return strings.EqualFold(a.Host, b.Host)
}
