package model

import (
	"encoding/json"
	"strings"
	"time"
)

// CandidateInput is the shape accepted at the API boundary. A batch entry
// may be either a bare hosting handle (string) or a rich object; both decode
// into this type and are resolved into one canonical CandidateProfile by the
// normalizer.
type CandidateInput struct {
	ID           string             `json:"id,omitempty"`
	Name         string             `json:"name,omitempty"`
	Handle       string             `json:"handle,omitempty"`
	PortfolioURL string             `json:"portfolioUrl,omitempty"`
	ResumeText   string             `json:"resumeText,omitempty"`
	LinkedInText string             `json:"linkedinText,omitempty"`
	Repos        []Repository       `json:"repos,omitempty"` // caller-supplied repository summaries, used as-is
	Salary       *SalaryExpectation `json:"salaryExpectation,omitempty"`
}

// UnmarshalJSON accepts either a JSON string (a hosting handle) or the
// full object form.
func (c *CandidateInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var handle string
		if err := json.Unmarshal(data, &handle); err != nil {
			return err
		}
		*c = CandidateInput{Handle: handle}
		return nil
	}

	type alias CandidateInput
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = CandidateInput(a)
	return nil
}

// Key returns the stable identifier used for deduplication, error reporting
// and tie-breaking: the explicit id when present, else the hosting handle,
// else the name.
func (c CandidateInput) Key() string {
	if c.ID != "" {
		return c.ID
	}
	if c.Handle != "" {
		return c.Handle
	}
	return c.Name
}

// SalaryExpectation is the candidate's declared compensation expectation.
type SalaryExpectation struct {
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Target   float64 `json:"target"`
	Currency string  `json:"currency,omitempty"`
}

// TextClaim is an uncorroborated free-text signal (resume, LinkedIn,
// extracurricular writeups).
type TextClaim struct {
	Source string `json:"source"` // "resume", "linkedin", "extracurricular"
	Text   string `json:"text"`
}

// HostingProfile is the user metadata returned by the code-hosting fetcher.
type HostingProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	Followers   int    `json:"followers"`
	PublicRepos int    `json:"publicRepos"`
}

// Repository is one repository summary from the code-hosting fetcher or
// supplied directly by the caller.
type Repository struct {
	Name        string    `json:"name"`
	FullName    string    `json:"fullName,omitempty"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Commits     int       `json:"commits,omitempty"` // candidate's commit count, when the source reports it
	IsOwner     bool      `json:"isOwner"`
	IsFork      bool      `json:"isFork"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	PushedAt    time.Time `json:"pushedAt,omitempty"`
}

// PortfolioProject is one project extracted from a portfolio page.
type PortfolioProject struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	LiveDemo    bool     `json:"liveDemo"`
	CaseStudy   bool     `json:"caseStudy"`
}

// PortfolioData is the structured output of the portfolio extractor.
type PortfolioData struct {
	URL          string             `json:"url"`
	Projects     []PortfolioProject `json:"projects"`
	Testimonials int                `json:"testimonials"`
	Reliability  float64            `json:"reliability"` // 0-1 extraction confidence
}

// CandidateProfile is the canonical per-candidate view all scoring
// components operate on. It is constructed once per analysis request and
// never mutated after scoring.
type CandidateProfile struct {
	ID           string             `json:"id"`
	Name         string             `json:"name,omitempty"`
	Handle       string             `json:"handle,omitempty"`
	PortfolioURL string             `json:"portfolioUrl,omitempty"`
	Hosting      *HostingProfile    `json:"hosting,omitempty"`
	Repos        []Repository       `json:"repos,omitempty"`
	Portfolio    *PortfolioData     `json:"portfolio,omitempty"`
	Claims       []TextClaim        `json:"claims,omitempty"`
	Salary       *SalaryExpectation `json:"salaryExpectation,omitempty"`

	// Degraded lists signal sources that were unavailable for this
	// candidate (e.g. "hosting: rate limited"). Scoring proceeds on
	// whatever remains.
	Degraded []string `json:"degraded,omitempty"`
}

// HasHostingSignals reports whether any code-hosting derived data is
// available for this candidate.
func (p *CandidateProfile) HasHostingSignals() bool {
	return len(p.Repos) > 0
}
