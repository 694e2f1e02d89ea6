package domain

import (
	"encoding/json"
	"strings"
)

// ConcessionRecord is the business record checked by the validation rules.
// It is immutable: fields are only reachable through value-receiver getters,
// so a record can be shared by any number of concurrently running rules.
type ConcessionRecord struct {
	concessionName string
	companyName    string
	cveNumber      string
	hasCVE         bool
	region         string
	sentimentScore float64
}

// NewConcessionRecord builds a record. A nil cveNumber means the identifier is absent.
func NewConcessionRecord(concessionName, companyName string, cveNumber *string, region string, sentimentScore float64) ConcessionRecord {
	rec := ConcessionRecord{
		concessionName: concessionName,
		companyName:    companyName,
		region:         region,
		sentimentScore: sentimentScore,
	}
	if cveNumber != nil {
		rec.cveNumber = *cveNumber
		rec.hasCVE = true
	}
	return rec
}

// ConcessionName returns the concession name.
func (r ConcessionRecord) ConcessionName() string { return r.concessionName }

// CompanyName returns the owning company name.
func (r ConcessionRecord) CompanyName() string { return r.companyName }

// CVENumber returns the identifier and whether it is present at all.
func (r ConcessionRecord) CVENumber() (string, bool) { return r.cveNumber, r.hasCVE }

// Region returns the region.
func (r ConcessionRecord) Region() string { return r.region }

// SentimentScore returns the sentiment score.
func (r ConcessionRecord) SentimentScore() float64 { return r.sentimentScore }

// CVENumberPtr returns a fresh copy of the identifier, or nil when absent.
func (r ConcessionRecord) CVENumberPtr() *string {
	if !r.hasCVE {
		return nil
	}
	v := r.cveNumber
	return &v
}

// HasBlankCVE reports whether the identifier is absent or whitespace only.
func (r ConcessionRecord) HasBlankCVE() bool {
	return !r.hasCVE || strings.TrimSpace(r.cveNumber) == ""
}

// concessionRecordJSON is the wire shape of a ConcessionRecord.
type concessionRecordJSON struct {
	ConcessionName string  `json:"concession_name"`
	CompanyName    string  `json:"company_name"`
	CVENumber      *string `json:"cve_number"`
	Region         string  `json:"region"`
	SentimentScore float64 `json:"sentiment_score"`
}

// MarshalJSON encodes an absent identifier as null.
func (r ConcessionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(concessionRecordJSON{
		ConcessionName: r.concessionName,
		CompanyName:    r.companyName,
		CVENumber:      r.CVENumberPtr(),
		Region:         r.region,
		SentimentScore: r.sentimentScore,
	})
}

// UnmarshalJSON decodes a record; a null or missing cve_number is absent.
func (r *ConcessionRecord) UnmarshalJSON(data []byte) error {
	var raw concessionRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewConcessionRecord(raw.ConcessionName, raw.CompanyName, raw.CVENumber, raw.Region, raw.SentimentScore)
	return nil
}
