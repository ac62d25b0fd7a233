// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the report data model shared by the metaqa
// packages and written to disk by the CLI.
package types

// QualityLevel is the band a 0-100 score falls into.
type QualityLevel string

const (
	LevelExcellent  QualityLevel = "excellent"
	LevelGood       QualityLevel = "good"
	LevelAcceptable QualityLevel = "acceptable"
	LevelPoor       QualityLevel = "poor"
	LevelCritical   QualityLevel = "critical"
)

// Level thresholds are strict lower bounds.
const (
	ExcellentThreshold  = 90.0
	GoodThreshold       = 75.0
	AcceptableThreshold = 60.0
	PoorThreshold       = 40.0
)

// LevelForScore maps a score to its quality level. The same mapping is
// used for the overall report and for every category.
func LevelForScore(score float64) QualityLevel {
	switch {
	case score >= ExcellentThreshold:
		return LevelExcellent
	case score >= GoodThreshold:
		return LevelGood
	case score >= AcceptableThreshold:
		return LevelAcceptable
	case score >= PoorThreshold:
		return LevelPoor
	default:
		return LevelCritical
	}
}

// Rank orders levels from CRITICAL (0) to EXCELLENT (4). Unknown levels
// rank -1.
func (l QualityLevel) Rank() int {
	switch l {
	case LevelCritical:
		return 0
	case LevelPoor:
		return 1
	case LevelAcceptable:
		return 2
	case LevelGood:
		return 3
	case LevelExcellent:
		return 4
	}
	return -1
}

// Valid reports whether l is one of the five declared levels.
func (l QualityLevel) Valid() bool { return l.Rank() >= 0 }

// ExtractionStatus is the inferred outcome of one upstream extractor.
type ExtractionStatus string

const (
	StatusSuccess ExtractionStatus = "success"
	StatusPartial ExtractionStatus = "partial"
	StatusFailed  ExtractionStatus = "failed"
	StatusSkipped ExtractionStatus = "skipped"
	StatusTimeout ExtractionStatus = "timeout"
)

// Valid reports whether s is a declared status.
func (s ExtractionStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusPartial, StatusFailed, StatusSkipped, StatusTimeout:
		return true
	}
	return false
}

// Severity grades a failure pattern or recommendation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// FailureType names a systemic failure mode.
type FailureType string

const (
	FailureTimeout               FailureType = "timeout"
	FailureExtraction            FailureType = "extraction_failure"
	FailureLowQualityCategories  FailureType = "low_quality_categories"
	FailureMissingCriticalFields FailureType = "missing_critical_fields"
	FailureValidationErrors      FailureType = "validation_errors"
)

// Priority returns the recommendation priority for a detected failure.
func (f FailureType) Priority() Severity {
	switch f {
	case FailureExtraction:
		return SeverityCritical
	case FailureTimeout, FailureMissingCriticalFields:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// FieldValidationResult is the verdict on one flattened field.
type FieldValidationResult struct {
	IsValid bool     `json:"is_valid" yaml:"is_valid"`
	Errors  []string `json:"errors" yaml:"errors"`
}

// CategoryQuality holds the assessment of one expected metadata category.
type CategoryQuality struct {
	CategoryName string `json:"category_name" yaml:"category_name"`

	// TotalExpected is the indicator keyword count plus the critical field count.
	TotalExpected   int `json:"total_expected" yaml:"total_expected"`
	FieldsExtracted int `json:"fields_extracted" yaml:"fields_extracted"`
	FieldsValid     int `json:"fields_valid" yaml:"fields_valid"`

	QualityScore float64      `json:"quality_score" yaml:"quality_score"`
	QualityLevel QualityLevel `json:"quality_level" yaml:"quality_level"`

	MissingCriticalFields []string `json:"missing_critical_fields" yaml:"missing_critical_fields"`
	ValidationErrors      []string `json:"validation_errors" yaml:"validation_errors"`
	Warnings              []string `json:"warnings" yaml:"warnings"`
}

// ExtractorQuality holds the inferred performance of one upstream extractor.
type ExtractorQuality struct {
	ExtractorName string           `json:"extractor_name" yaml:"extractor_name"`
	ExtractorType string           `json:"extractor_type" yaml:"extractor_type"`
	Status        ExtractionStatus `json:"status" yaml:"status"`

	FieldsExtracted int     `json:"fields_extracted" yaml:"fields_extracted"`
	ExpectedFields  int     `json:"expected_fields" yaml:"expected_fields"`
	QualityScore    float64 `json:"quality_score" yaml:"quality_score"`

	ExecutionTimeMS float64  `json:"execution_time_ms" yaml:"execution_time_ms"`
	Errors          []string `json:"errors" yaml:"errors"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
	RetryCount      int      `json:"retry_count" yaml:"retry_count"`
}

// FailurePattern is a detected systemic failure mode.
type FailurePattern struct {
	Type               FailureType `json:"type" yaml:"type"`
	Severity           Severity    `json:"severity" yaml:"severity"`
	Description        string      `json:"description" yaml:"description"`
	AffectedExtractors []string    `json:"affected_extractors,omitempty" yaml:"affected_extractors,omitempty"`
	AffectedCategories []string    `json:"affected_categories,omitempty" yaml:"affected_categories,omitempty"`
	Recommendation     string      `json:"recommendation" yaml:"recommendation"`
}

// Recommendation is one ranked remediation item.
type Recommendation struct {
	Priority Severity `json:"priority" yaml:"priority"`
	Category string   `json:"category" yaml:"category"`
	Message  string   `json:"message" yaml:"message"`
	Action   string   `json:"action" yaml:"action"`
}
