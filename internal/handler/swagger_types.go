package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// TokenRequest represents the client-credentials token request body.
type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required" example:"3f1c2a9e-8b7d-4c6e-9f01-2a3b4c5d6e7f"`
	ClientSecret string `json:"client_secret" binding:"required" example:"s3cr3t-client-secret"`
}

// ValidateRecordRequest represents a concession record to validate.
type ValidateRecordRequest struct {
	ConcessionName string  `json:"concession_name" example:"North Ridge Timber"`
	CompanyName    string  `json:"company_name" example:"Ridge Holdings Ltd"`
	CVENumber      *string `json:"cve_number" example:"12345"`
	Region         string  `json:"region" example:"NORTH"`
	SentimentScore float64 `json:"sentiment_score" example:"0.75"`
}

// SourceURLResponse holds a presigned link to an archived batch file.
type SourceURLResponse struct {
	URL string `json:"url" example:"https://dataquality-batches.s3.amazonaws.com/batches/..."`
}
