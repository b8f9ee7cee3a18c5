package extract

import (
	"regexp"
	"strings"
)

// listMarker matches "1. ", "2) " and similar ordinal prefixes
var listMarker = regexp.MustCompile(`^\d+[.)]\s*`)

// ParseClaims turns a numbered-list reply into an ordered claim list.
// Lines are trimmed, blank lines dropped and leading ordinals stripped.
// Duplicates are kept; the order of the reply is the importance order.
func ParseClaims(reply string) []string {
	var claims []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		line = strings.TrimLeft(line, "-*• ")
		if line == "" {
			continue
		}
		claims = append(claims, line)
	}
	return claims
}
