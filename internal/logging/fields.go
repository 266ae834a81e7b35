package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldPath is the standardized structured logging key for source file paths.
	FieldPath = "path"
	// FieldDestination is the standardized structured logging key for destination paths.
	FieldDestination = "destination"
	// FieldRule is the standardized structured logging key for matched rule names.
	FieldRule = "rule"
	// FieldConfidence is the standardized structured logging key for classification confidence.
	FieldConfidence = "confidence"
	// FieldDigest is the standardized structured logging key for content digests.
	FieldDigest = "digest"
	// FieldAction is the standardized structured logging key for migration actions.
	FieldAction = "action"
)
