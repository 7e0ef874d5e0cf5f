package usecase

import "errors"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeLeadNotFound       = "LEAD_NOT_FOUND"
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeCampaignNotFound   = "CAMPAIGN_NOT_FOUND"
	CodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	CodeInvalidTransition  = "INVALID_STATUS"
	CodeSearchFailed       = "SEARCH_FAILED"
	CodeExportFailed       = "EXPORT_FAILED"
	CodeInsightFailed      = "INSIGHT_FAILED"
	CodeIntegrationError   = "INTEGRATION_ERROR"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeQueueError         = "QUEUE_ERROR"
	CodeFeatureUnavailable = "FEATURE_UNAVAILABLE"
)

// DomainError is caused by the caller's input and is safe to show.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is an infrastructure failure. Message is for logs only.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
