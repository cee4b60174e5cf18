// Shared record types for the extraction pipeline.

package models

// CandidateStub is the minimal identity scraped from a search result row,
// before the profile panel has been opened.
type CandidateStub struct {
	Name          string
	RecruiterURL  string
	EducationText string
	Headline      string
}

// EducationEntry is one row of the panel's education section.
// Year is the graduation (end) year when the dates cell had one.
type EducationEntry struct {
	Degree string `json:"degree"`
	Year   *int   `json:"year"`
}

// CandidateRecord is the canonical exported entity, built once per
// successfully extracted candidate. Immutable after construction except for
// NeedsReview/Review, which the grad-year filter may set.
type CandidateRecord struct {
	FullName          string `json:"full_name"`
	CurrentCompany    string `json:"current_company"`
	CurrentTitle      string `json:"current_title"`
	PublicProfileURL  string `json:"linkedin_public_url"`
	Location          string `json:"location"`
	Headline          string `json:"headline"`
	BachelorsGradYear *int   `json:"bachelors_grad_year,omitempty"`
	YearsExperience   *int   `json:"years_experience,omitempty"`
	RecruiterURL      string `json:"recruiter_url"`
	NeedsReview       bool   `json:"needs_review"`
	Review            string `json:"review"`
}

// DedupKey is the uniqueness key downstream consumers dedup on: the public
// profile URL, or the recruiter URL when the public one could not be resolved.
func (r CandidateRecord) DedupKey() string {
	if r.PublicProfileURL != "" {
		return r.PublicProfileURL
	}
	return r.RecruiterURL
}
