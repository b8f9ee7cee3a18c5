package model

import "time"

// Grade is the coarse trust classification of an article
type Grade string

const (
	GradeA  Grade = "A"   // Enough corroboration including a credible outlet
	GradeB  Grade = "B"   // Too few sources to cross-validate
	GradeC  Grade = "C"   // No credible outlet, or suspicious repetition
	GradeNA Grade = "N/A" // No corroboration data
)

// ScoreReport is the output of the trust scoring stage
type ScoreReport struct {
	Grade             Grade    `json:"grade"`
	Summary           string   `json:"summary"`
	TotalArticles     int      `json:"total_articles"`      // URLs that survived parsing, duplicates included
	TrustedCount      int      `json:"trusted_count"`       // URLs classified as trusted
	UniqueDomainCount int      `json:"unique_domain_count"` // Distinct domains across all URLs
	TrustedURLs       []string `json:"trusted_urls"`
	OtherURLs         []string `json:"other_urls"`
}

// Stage identifies a step of the analysis pipeline
type Stage string

const (
	StageFetch  Stage = "fetch"
	StageClaims Stage = "claims"
	StageSearch Stage = "search"
	StageScore  Stage = "score"
	StageDone   Stage = "done"
)

// AnalysisReport is the complete result of analyzing one article
type AnalysisReport struct {
	ID         string    `json:"id"`
	SourceURL  string    `json:"source_url,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	TextLength int                  `json:"text_length"`
	Claims     []string             `json:"claims"`
	Index      []CorroborationEntry `json:"corroboration"`

	Score ScoreReport `json:"score"`

	Warnings []ClaimFailure `json:"warnings,omitempty"` // Per-claim search failures
	Failure  *Failure       `json:"failure,omitempty"`  // Set when a stage short-circuited the run
	Cached   bool           `json:"cached"`             // Score came from the cache
}

// Failure describes why a pipeline run ended early
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Stage   Stage       `json:"stage"`
	Message string      `json:"message"`
}

// Degraded reports whether the run ended early
func (r *AnalysisReport) Degraded() bool {
	return r.Failure != nil
}
