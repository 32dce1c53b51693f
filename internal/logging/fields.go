package logging

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldLanguage is the key for the language a list or deck operation targets.
	FieldLanguage = "language"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the likely cause or next step.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldPath is the key for filesystem paths.
	FieldPath = "path"
)
