package domain

// JobPosting is the read-only view of an agency's job posting.
type JobPosting struct {
	ID       string `json:"id"`
	AgencyID string `json:"agency_id"`
	Title    string `json:"title"`
	Country  string `json:"country,omitempty"`
	IsOpen   bool   `json:"is_open"`
}

// JobPosition is an open position within a posting.
type JobPosition struct {
	ID           string `json:"id"`
	JobPostingID string `json:"job_posting_id"`
	Title        string `json:"title"`
	Vacancies    int    `json:"vacancies"`
}

// Candidate is the read-only view of a job seeker.
type Candidate struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}
