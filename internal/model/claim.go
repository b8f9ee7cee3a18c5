package model

// Claim is a single verifiable assertion extracted from article text.
// Order in a claim list reflects extractor-assigned importance.
type Claim = string

// CorroborationIndex maps each claim to the URLs the search stage found for it.
// Claims keep their insertion order; a claim with no in-scope URLs is never stored.
type CorroborationIndex struct {
	order []string
	urls  map[string][]string
}

// NewCorroborationIndex creates an empty index
func NewCorroborationIndex() *CorroborationIndex {
	return &CorroborationIndex{
		urls: make(map[string][]string),
	}
}

// Set stores the URLs for a claim. An empty URL list is ignored so that
// claims without corroboration stay absent. Re-setting an existing claim
// replaces its URLs but keeps its original position.
func (c *CorroborationIndex) Set(claim string, urls []string) {
	if len(urls) == 0 {
		return
	}
	if c.urls == nil {
		c.urls = make(map[string][]string)
	}
	if _, exists := c.urls[claim]; !exists {
		c.order = append(c.order, claim)
	}
	c.urls[claim] = append([]string(nil), urls...)
}

// Get returns the URLs stored for a claim
func (c *CorroborationIndex) Get(claim string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	urls, ok := c.urls[claim]
	return urls, ok
}

// Claims returns the stored claims in insertion order
func (c *CorroborationIndex) Claims() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len returns the number of claims with corroboration
func (c *CorroborationIndex) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Flatten returns every URL across all claims: claims in order, then URLs
// within each claim in order. Duplicates across claims are preserved.
func (c *CorroborationIndex) Flatten() []string {
	if c == nil {
		return []string{}
	}
	flat := make([]string, 0, len(c.order)*5)
	for _, claim := range c.order {
		flat = append(flat, c.urls[claim]...)
	}
	return flat
}

// Entries returns the index as an ordered slice, suitable for JSON output
func (c *CorroborationIndex) Entries() []CorroborationEntry {
	if c == nil {
		return []CorroborationEntry{}
	}
	entries := make([]CorroborationEntry, 0, len(c.order))
	for _, claim := range c.order {
		entries = append(entries, CorroborationEntry{
			Claim: claim,
			URLs:  append([]string(nil), c.urls[claim]...),
		})
	}
	return entries
}

// CorroborationEntry is one claim with its matching URLs
type CorroborationEntry struct {
	Claim string   `json:"claim"`
	URLs  []string `json:"urls"`
}

// ClaimFailure records a claim whose search query failed
type ClaimFailure struct {
	Claim string `json:"claim"`
	Error string `json:"error"`
}
