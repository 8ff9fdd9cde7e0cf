// Package feedback stores beta feedback sent from devices.
package feedback

import "time"

const (
	TypeBug         = "bug"
	TypeFeature     = "feature"
	TypeImprovement = "improvement"
	TypeGeneral     = "general"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

type Feedback struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"-"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Feature   string    `json:"feature,omitempty"`
	PageURL   string    `json:"page_url,omitempty"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

type SubmitCommand struct {
	Type     string `json:"type" validate:"required,oneof=bug feature improvement general"`
	Message  string `json:"message" validate:"required,notblank,max=5000"`
	Severity string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Feature  string `json:"feature" validate:"omitempty,oneof=scanner recommendations library profile stats export ui performance other"`
	PageURL  string `json:"page_url" validate:"omitempty,url,max=2000"`
}
