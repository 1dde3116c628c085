// Package api contains API contract definitions for the log report service.
// Version v1 represents the current stable API version.
package api

// ReportGenerateRequest carries the caller-controlled inputs of a report run.
// The log export itself travels as the multipart "file" part; these fields
// come from the remaining form values, with query parameters as a fallback.
type ReportGenerateRequest struct {
	Service  string `json:"service" validate:"omitempty,max=200"`
	Level    string `json:"level" validate:"omitempty,max=64"`
	Filename string `json:"filename" validate:"omitempty,filename"`
}
