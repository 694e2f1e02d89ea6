package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// APIClient is a machine client allowed to call the validation API.
type APIClient struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	SecretHash string    `db:"secret_hash" json:"-"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Region is a row of the region master list.
type Region struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// ValidationRun is the persisted result of validating one record.
type ValidationRun struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	BatchID        *uuid.UUID       `db:"batch_id" json:"batch_id"`
	Source         RecordSource     `db:"source" json:"source"`
	RowNumber      *int             `db:"row_number" json:"row_number,omitempty"`
	ConcessionName string           `db:"concession_name" json:"concession_name"`
	CompanyName    string           `db:"company_name" json:"company_name"`
	CVENumber      *string          `db:"cve_number" json:"cve_number"`
	Region         string           `db:"region" json:"region"`
	SentimentScore float64          `db:"sentiment_score" json:"sentiment_score"`
	Status         ValidationStatus `db:"status" json:"status"`
	Errors         json.RawMessage  `db:"errors" json:"errors"`
	RuleKeys       json.RawMessage  `db:"rule_keys" json:"rule_keys"`
	DurationMs     int64            `db:"duration_ms" json:"duration_ms"`
	SubmittedBy    string           `db:"submitted_by" json:"submitted_by"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

// Record rebuilds the immutable record a run was produced from.
func (r *ValidationRun) Record() ConcessionRecord {
	return NewConcessionRecord(r.ConcessionName, r.CompanyName, r.CVENumber, r.Region, r.SentimentScore)
}

// ErrorMessages decodes the stored error list. Undecodable data yields nil.
func (r *ValidationRun) ErrorMessages() []string {
	var msgs []string
	if len(r.Errors) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Errors, &msgs); err != nil {
		return nil
	}
	return msgs
}

// ValidationBatch is a spreadsheet of records submitted for asynchronous validation.
type ValidationBatch struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	Filename       string      `db:"filename" json:"filename"`
	ContentType    string      `db:"content_type" json:"content_type"`
	SizeBytes      int64       `db:"size_bytes" json:"size_bytes"`
	S3Bucket       string      `db:"s3_bucket" json:"s3_bucket"`
	S3Key          string      `db:"s3_key" json:"s3_key"`
	Status         BatchStatus `db:"status" json:"status"`
	Attempts       int         `db:"attempts" json:"attempts"`
	TotalRecords   int         `db:"total_records" json:"total_records"`
	ValidRecords   int         `db:"valid_records" json:"valid_records"`
	InvalidRecords int         `db:"invalid_records" json:"invalid_records"`
	AbortedRecords int         `db:"aborted_records" json:"aborted_records"`
	ErrorMessage   string      `db:"error_message" json:"error_message"`
	SubmittedBy    string      `db:"submitted_by" json:"submitted_by"`
	CompletedAt    *time.Time  `db:"completed_at" json:"completed_at"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}
