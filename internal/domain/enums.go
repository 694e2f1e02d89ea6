package domain

// ValidationStatus is the verdict stored for a validated record.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// RecordSource identifies how a record reached the gate.
type RecordSource string

const (
	RecordSourceAPI   RecordSource = "api"
	RecordSourceBatch RecordSource = "batch"
)

// BatchStatus represents the lifecycle of a submitted batch.
type BatchStatus string

const (
	BatchStatusQueued     BatchStatus = "queued"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// BatchFileType is an accepted batch upload format.
type BatchFileType string

const (
	BatchFileCSV  BatchFileType = "csv"
	BatchFileXLSX BatchFileType = "xlsx"
)

// AllowedBatchExtensions maps file extensions (without dot) to BatchFileType.
var AllowedBatchExtensions = map[string]BatchFileType{
	"csv":  BatchFileCSV,
	"xlsx": BatchFileXLSX,
}

// BatchContentTypes maps BatchFileType to its MIME content type.
var BatchContentTypes = map[BatchFileType]string{
	BatchFileCSV:  "text/csv",
	BatchFileXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
