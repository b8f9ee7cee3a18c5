package search

import (
	"net/url"
	"strings"
)

// HostFilter keeps URLs served from the canonical article hosts.
// A URL matches when its host, without one leading "www.", equals a
// configured host or is a subdomain of it.
type HostFilter struct {
	hosts []string
}

// NewHostFilter creates a filter for the given hosts
func NewHostFilter(hosts []string) *HostFilter {
	f := &HostFilter{}
	for _, h := range hosts {
		h = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(h)), "www.")
		if h != "" {
			f.hosts = append(f.hosts, h)
		}
	}
	return f
}

// Allows reports whether rawURL is served from a canonical host
func (f *HostFilter) Allows(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "" {
		return false
	}

	for _, h := range f.hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Filter returns the links of items that pass, in result order
func (f *HostFilter) Filter(items []NewsItem) []string {
	var urls []string
	for _, item := range items {
		if f.Allows(item.Link) {
			urls = append(urls, item.Link)
		}
	}
	return urls
}
