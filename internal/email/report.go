// Package email renders the batch reports sent to the data steward.
package email

import (
	"fmt"
	"html"
	"strings"

	"dataquality/internal/domain"
	"dataquality/internal/port"
)

// MaxReportedRows caps how many rejected rows are listed in one report.
const MaxReportedRows = 50

// Report is a rendered batch report.
type Report struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// BuildBatchReport renders the summary of a processed batch.
func BuildBatchReport(batch *domain.ValidationBatch, rejections []port.BatchRejection) Report {
	subject := fmt.Sprintf("Batch %s: %d of %d records rejected",
		batch.Filename, batch.InvalidRecords+batch.AbortedRecords, batch.TotalRecords)

	var text strings.Builder
	fmt.Fprintf(&text, "Batch %s (%s) finished with status %s.\n\n", batch.Filename, batch.ID, batch.Status)
	fmt.Fprintf(&text, "Total: %d\nValid: %d\nInvalid: %d\nAborted: %d\n",
		batch.TotalRecords, batch.ValidRecords, batch.InvalidRecords, batch.AbortedRecords)
	if batch.ErrorMessage != "" {
		fmt.Fprintf(&text, "\nError: %s\n", batch.ErrorMessage)
	}

	var rows strings.Builder
	if len(rejections) > 0 {
		text.WriteString("\nRejected rows:\n")
	}
	for i, rej := range rejections {
		if i == MaxReportedRows {
			fmt.Fprintf(&text, "... and %d more\n", len(rejections)-MaxReportedRows)
			fmt.Fprintf(&rows, `<tr><td colspan="2">... and %d more</td></tr>`, len(rejections)-MaxReportedRows)
			break
		}
		msgs := strings.Join(rej.Messages, "; ")
		fmt.Fprintf(&text, "  row %d: %s\n", rej.RowNumber, msgs)
		fmt.Fprintf(&rows, "<tr><td>%d</td><td>%s</td></tr>", rej.RowNumber, html.EscapeString(msgs))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Batch %s</h2>
  <p>Status: <strong>%s</strong></p>
  <p>Total %d, valid %d, invalid %d, aborted %d.</p>
  <table style="border-collapse: collapse; width: 100%%;">%s</table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Data Quality Gate</p>
</body>
</html>`, html.EscapeString(batch.Filename), batch.Status,
		batch.TotalRecords, batch.ValidRecords, batch.InvalidRecords, batch.AbortedRecords, rows.String())

	return Report{Subject: subject, TextBody: text.String(), HTMLBody: htmlBody}
}
