package model

import (
	"strings"
	"time"
)

// RecordStatus tracks where a record is in the batch lifecycle. It mirrors
// the status column of the contacts table.
type RecordStatus string

const (
	StatusNotProcessed RecordStatus = "not_processed"
	StatusProcessing   RecordStatus = "processing"
	StatusProcessed    RecordStatus = "processed"
	StatusError        RecordStatus = "error"
)

// Record is one decision-maker candidate to verify against its source page.
// Records are created at import time and read-only afterwards; verification
// only ever attaches a VerificationResult.
type Record struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	SourceURL string `json:"source_url"`

	Status    RecordStatus        `json:"status"`
	Result    *VerificationResult `json:"result,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// FullName returns "First Last" with absent parts dropped.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// VerificationResult is the outcome of one verification pass. All three
// presence fields are definite booleans: absent source data yields false,
// never unknown. PhonePresent and TitlePresent are always false when
// NamePresent is false (the checks are skipped entirely).
type VerificationResult struct {
	NamePresent  bool   `json:"name_present"`
	PhonePresent bool   `json:"phone_present"`
	TitlePresent bool   `json:"title_present"`
	Error        string `json:"error,omitempty"`
}
