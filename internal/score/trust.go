package score

import (
	"net/url"
	"strings"

	"github.com/ppiankov/newstrust/internal/model"
)

// TrustedDomainSet is an immutable list of credible outlet domains.
// It is built once and shared read-only between goroutines.
type TrustedDomainSet struct {
	entries []string
}

var defaultTrusted = NewTrustedDomainSet(model.DefaultTrustedDomains())

// NewTrustedDomainSet copies domains into a new set. Empty entries are skipped.
func NewTrustedDomainSet(domains []string) *TrustedDomainSet {
	entries := make([]string, 0, len(domains))
	for _, d := range domains {
		if d == "" {
			continue
		}
		entries = append(entries, d)
	}
	return &TrustedDomainSet{entries: entries}
}

// DefaultTrustedDomainSet returns the built-in set
func DefaultTrustedDomainSet() *TrustedDomainSet {
	return defaultTrusted
}

// Len returns the number of entries
func (s *TrustedDomainSet) Len() int {
	return len(s.entries)
}

// IsTrustedDomain reports whether any entry is a substring of domain.
//
// Matching is deliberately loose and case-sensitive: "chosun.com" matches
// "biz.chosun.com" but also "notchosun.com", and "NEWS.CHOSUN.COM" matches
// nothing. Tighten here if suffix matching is ever wanted.
func (s *TrustedDomainSet) IsTrustedDomain(domain string) bool {
	if s == nil || domain == "" {
		return false
	}
	for _, entry := range s.entries {
		if strings.Contains(domain, entry) {
			return true
		}
	}
	return false
}

// IsTrustedDomain checks domain against the built-in set
func IsTrustedDomain(domain string) bool {
	return defaultTrusted.IsTrustedDomain(domain)
}

// DomainOf returns the host of rawURL with one leading "www." removed.
// The port, if any, is kept. ok is false when the URL cannot be parsed
// or has no host.
func DomainOf(rawURL string) (domain string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.TrimPrefix(u.Host, "www."), true
}
