package cli

import "time"

// StoreOptions selects where session answer logs are kept.
type StoreOptions struct {
	Kind     string // file, redis or memory
	Dir      string // file store directory
	RedisURL string
	TTL      time.Duration
}

// BuildOptions configures the build command.
type BuildOptions struct {
	SchemaPath  string
	TypeName    string
	Format      string // json or yaml
	OutputPath  string
	AnswersPath string
	SessionID   string
	Fresh       bool
	Store       StoreOptions
	LineEditor  bool
	JSON        bool
	Debug       bool
	Quiet       bool
	MetricsAddr string
	Timeout     time.Duration
}

// ShowOptions configures the show command.
type ShowOptions struct {
	SchemaPath string
	TypeName   string
	ValuePath  string
	JSON       bool
}
