package models

import (
	"encoding/json"
	"time"
)

// JobPosting is one row of the canonical dataset after cleaning.
// Pointer fields are nil when the source carried no usable value.
type JobPosting struct {
	ID              string   `json:"id"`
	JobTitle        string   `json:"job_title"`
	CompanyName     string   `json:"company_name"`
	Location        string   `json:"location"`
	Industry        string   `json:"industry"`
	Sector          string   `json:"sector"`
	TypeOfOwnership string   `json:"type_of_ownership"`
	Founded         *int     `json:"founded,omitempty"`
	EasyApply       bool     `json:"easy_apply"`
	SalaryEstimate  string   `json:"salary_estimate"`
	AvgSalaryK      *float64 `json:"avg_salary_k,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
}

// Dataset is the canonical table. Immutable after load; filter operations
// always produce a new slice, never mutate Postings.
type Dataset struct {
	SourcePath string       `json:"source_path"`
	LoadedAt   time.Time    `json:"loaded_at"`
	Postings   []JobPosting `json:"postings"`
}

func (d Dataset) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Dataset) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}
