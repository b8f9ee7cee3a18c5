package score

import (
	"fmt"

	"github.com/ppiankov/newstrust/internal/model"
)

const (
	minCorroboration = 3 // Fewer articles than this cannot be cross-validated
	maxCorroboration = 8 // More than this looks like syndication or abuse
)

// Scorer grades a flat list of corroborating URLs. It has no side effects
// and is safe for concurrent use.
type Scorer struct {
	trusted *TrustedDomainSet
}

// NewScorer creates a scorer. A nil set uses the built-in trusted domains.
func NewScorer(trusted *TrustedDomainSet) *Scorer {
	if trusted == nil {
		trusted = DefaultTrustedDomainSet()
	}
	return &Scorer{trusted: trusted}
}

// Score classifies every URL and computes the grade and summary.
// URLs are counted with duplicates; unparsable URLs are dropped from every count.
func (s *Scorer) Score(urls []string) model.ScoreReport {
	report := model.ScoreReport{
		TrustedURLs: []string{},
		OtherURLs:   []string{},
	}

	domains := make(map[string]struct{})
	for _, u := range urls {
		domain, ok := DomainOf(u)
		if !ok {
			continue
		}
		report.TotalArticles++
		domains[domain] = struct{}{}

		if s.trusted.IsTrustedDomain(domain) {
			report.TrustedURLs = append(report.TrustedURLs, u)
		} else {
			report.OtherURLs = append(report.OtherURLs, u)
		}
	}

	report.TrustedCount = len(report.TrustedURLs)
	report.UniqueDomainCount = len(domains)
	report.Grade = Grade(report.TotalArticles, report.TrustedCount)
	report.Summary = Summary(report.Grade, report.TotalArticles, report.TrustedCount)
	return report
}

// Grade maps the article counts to a trust grade.
// The checks run in this order; the first match wins.
func Grade(total, trusted int) model.Grade {
	switch {
	case total <= 0:
		return model.GradeNA
	case total > maxCorroboration:
		return model.GradeC
	case total < minCorroboration:
		return model.GradeB
	case trusted >= 1:
		return model.GradeA
	default:
		return model.GradeC
	}
}

// Summary renders the explanation for a grade
func Summary(grade model.Grade, total, trusted int) string {
	switch {
	case grade == model.GradeNA:
		return "분석할 유사 기사를 찾지 못했습니다."
	case total > maxCorroboration:
		return fmt.Sprintf("유사 기사가 %d건(신뢰도 높은 언론사 %d곳)으로 과도하게 많아 어뷰징 또는 스팸성 이슈일 수 있습니다. 신뢰도를 낮게 평가합니다.", total, trusted)
	case grade == model.GradeB:
		return fmt.Sprintf("유사 기사가 %d건으로 매우 적어 교차 검증이 어렵습니다. 주장의 신뢰성을 단정하기 힘들어 주의가 필요합니다.", total)
	case grade == model.GradeA:
		return fmt.Sprintf("신뢰도 높은 언론사 %d곳을 포함해 총 %d곳에서 해당 내용을 다루고 있어 신뢰도가 높습니다.", trusted, total)
	default:
		return fmt.Sprintf("총 %d곳에서 관련 내용을 다루고 있지만, 신뢰도 높은 주요 언론사는 %d곳으로 사실 확인이 필요합니다.", total, trusted)
	}
}

// NoClaimsSummary explains a report that stopped before searching
const NoClaimsSummary = "기사의 핵심 주장을 추출하는 데 실패하여 분석을 진행할 수 없습니다."

// FetchFailedSummary explains a report whose article text could not be read
const FetchFailedSummary = "기사 본문을 가져오지 못해 분석을 진행할 수 없습니다."

// SearchFailedSummary explains a report whose corroboration search could not run
const SearchFailedSummary = "유사 기사 검색에 실패하여 분석을 진행할 수 없습니다."

// SearchConfigSummary explains a report whose search credentials were rejected
const SearchConfigSummary = "뉴스 검색 API 인증 정보가 올바르지 않아 분석을 진행할 수 없습니다. 설정을 확인해 주세요."

// Degraded builds an N/A report for a pipeline that stopped early
func Degraded(summary string) model.ScoreReport {
	return model.ScoreReport{
		Grade:       model.GradeNA,
		Summary:     summary,
		TrustedURLs: []string{},
		OtherURLs:   []string{},
	}
}
