// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConsistencyCheck is the outcome of one cross-field invariant check.
type ConsistencyCheck struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Report is the complete, immutable result of one metadata quality
// assessment. Field names are a stable schema for downstream consumers.
type Report struct {
	OverallScore float64      `json:"overall_score" yaml:"overall_score"`
	OverallLevel QualityLevel `json:"overall_level" yaml:"overall_level"`

	CompletenessScore float64 `json:"completeness_score" yaml:"completeness_score"`
	ValidityScore     float64 `json:"validity_score" yaml:"validity_score"`
	ConsistencyScore  float64 `json:"consistency_score" yaml:"consistency_score"`

	// FileType is the declared content type, e.g. "image/jpeg".
	FileType string `json:"file_type" yaml:"file_type"`

	// FileSize is the source file size in bytes; zero when unknown.
	FileSize int64 `json:"file_size" yaml:"file_size"`

	// ExtractionTimeMS is the upstream extraction duration supplied by the caller.
	ExtractionTimeMS float64 `json:"extraction_time_ms" yaml:"extraction_time_ms"`

	// TotalFields is the number of scalar leaves in the flattened record.
	TotalFields int  `json:"total_fields" yaml:"total_fields"`
	StrictMode  bool `json:"strict_mode" yaml:"strict_mode"`

	ExpectedCategories []string           `json:"expected_categories" yaml:"expected_categories"`
	ExtractorQualities []ExtractorQuality `json:"extractor_qualities" yaml:"extractor_qualities"`
	CategoryQualities  []CategoryQuality  `json:"category_qualities" yaml:"category_qualities"`
	FailurePatterns    []FailurePattern   `json:"failure_patterns" yaml:"failure_patterns"`
	ConsistencyChecks  []ConsistencyCheck `json:"consistency_checks" yaml:"consistency_checks"`
	Recommendations    []Recommendation   `json:"recommendations" yaml:"recommendations"`
	CriticalIssues     []string           `json:"critical_issues" yaml:"critical_issues"`

	// Timestamp is an RFC 3339 UTC time.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// MetadataHash is a hex SHA-256 digest of the flattened record, sorted by path.
	MetadataHash string `json:"metadata_hash" yaml:"metadata_hash"`
}

// Summary is a compact projection of a Report.
type Summary struct {
	OverallScore         float64      `json:"overall_score" yaml:"overall_score"`
	OverallLevel         QualityLevel `json:"overall_level" yaml:"overall_level"`
	CompletenessScore    float64      `json:"completeness_score" yaml:"completeness_score"`
	ValidityScore        float64      `json:"validity_score" yaml:"validity_score"`
	ConsistencyScore     float64      `json:"consistency_score" yaml:"consistency_score"`
	TotalFields          int          `json:"total_fields" yaml:"total_fields"`
	TotalExtractors      int          `json:"total_extractors" yaml:"total_extractors"`
	SuccessfulExtractors int          `json:"successful_extractors" yaml:"successful_extractors"`
	TotalCategories      int          `json:"total_categories" yaml:"total_categories"`
	FailurePatterns      int          `json:"failure_patterns" yaml:"failure_patterns"`
	CriticalIssues       int          `json:"critical_issues" yaml:"critical_issues"`
	Recommendations      int          `json:"recommendations" yaml:"recommendations"`
	MetadataHash         string       `json:"metadata_hash" yaml:"metadata_hash"`
	Timestamp            string       `json:"timestamp" yaml:"timestamp"`
}

// Comparison describes the change from one report to another.
type Comparison struct {
	ScoreChange        float64 `json:"score_change" yaml:"score_change"`
	CompletenessChange float64 `json:"completeness_change" yaml:"completeness_change"`
	ValidityChange     float64 `json:"validity_change" yaml:"validity_change"`
	ConsistencyChange  float64 `json:"consistency_change" yaml:"consistency_change"`

	LevelBefore QualityLevel `json:"level_before" yaml:"level_before"`
	LevelAfter  QualityLevel `json:"level_after" yaml:"level_after"`

	FieldsAdded   int `json:"fields_added" yaml:"fields_added"`
	FieldsRemoved int `json:"fields_removed" yaml:"fields_removed"`

	// SameData is true when both reports were computed from identical
	// flattened records.
	SameData bool `json:"same_data" yaml:"same_data"`

	// Improved is true when the second report scores strictly higher.
	Improved bool `json:"improved" yaml:"improved"`
}
