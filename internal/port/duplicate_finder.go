package port

import (
	"context"
	"time"
)

// DuplicateMatch holds enough information about an accepted record for an actionable message.
type DuplicateMatch struct {
	ConcessionName string    `db:"concession_name"`
	CreatedAt      time.Time `db:"created_at"`
}

// DuplicateQuery identifies the record a CVE lookup is made for. Accepted runs
// of the same record (same concession and company name, ignoring case and
// surrounding space) are resubmissions, not duplicates.
type DuplicateQuery struct {
	CVENumber      string
	ConcessionName string
	CompanyName    string
}

// DuplicateRecordFinder looks up accepted records of other concessions that share a CVE number.
type DuplicateRecordFinder interface {
	FindAcceptedByCVE(ctx context.Context, q DuplicateQuery) ([]DuplicateMatch, error)
}
