// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LogConfig holds logging settings for the CLI.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HistoryConfig holds settings for the local report history.
type HistoryConfig struct {
	// DB is the path to the SQLite database (default .metaqa/history.db).
	DB string `json:"db" yaml:"db" mapstructure:"db"`
}

// BatchConfig holds settings for concurrent batch assessment.
type BatchConfig struct {
	// Workers bounds the number of files assessed at once (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// Config groups all CLI settings read from metaqa.yaml and the environment.
type Config struct {
	// Indicators is an optional path to a YAML indicator table file. The
	// embedded default tables are used when empty.
	Indicators string `json:"indicators" yaml:"indicators" mapstructure:"indicators"`

	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Batch   BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
}
