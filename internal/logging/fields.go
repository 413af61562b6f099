package logging

// Standard field keys. Use these instead of ad-hoc strings so log lines stay
// greppable across components.
const (
	FieldComponent = "component"
	FieldJobID     = "job_id"
	FieldStage     = "stage"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldSource    = "source"
	FieldArtifact  = "artifact"
	FieldPercent   = "progress_percent"
)
