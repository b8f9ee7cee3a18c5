package extract

import "strings"

// FailureDetector recognizes in-band failure markers: text that a
// collaborator returned in place of a result to signal an error.
type FailureDetector struct {
	keywords []string
}

// NewFailureDetector creates a detector for the given keywords.
// Empty keywords are ignored.
func NewFailureDetector(keywords []string) *FailureDetector {
	d := &FailureDetector{}
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			d.keywords = append(d.keywords, k)
		}
	}
	return d
}

// IsFailure reports whether text contains any failure keyword
func (d *FailureDetector) IsFailure(text string) bool {
	if d == nil {
		return false
	}
	for _, k := range d.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// IsFailedClaimList reports whether a claim list means "no claims":
// it is empty, or its first element is a failure marker.
func (d *FailureDetector) IsFailedClaimList(claims []string) bool {
	if len(claims) == 0 {
		return true
	}
	return d.IsFailure(claims[0])
}
