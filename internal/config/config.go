package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// DatabaseConfig holds PostgreSQL connection settings. The DSN is only
// required when the pipeline persists its output.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PipelineConfig holds dataset input and output settings.
type PipelineConfig struct {
	VocabularyPath string `yaml:"vocabulary_path" env:"PIPELINE_VOCABULARY_PATH"`
	KanaTablePath  string `yaml:"kana_table_path" env:"PIPELINE_KANA_TABLE_PATH"`
	OutputDir      string `yaml:"output_dir"      env:"PIPELINE_OUTPUT_DIR"      env-default:"./dataset"`
	Persist        bool   `yaml:"persist"         env:"PIPELINE_PERSIST"`
	DryRun         bool   `yaml:"dry_run"         env:"PIPELINE_DRY_RUN"`
	SkipEnrich     bool   `yaml:"skip_enrich"     env:"PIPELINE_SKIP_ENRICH"`
	ReuseEnriched  bool   `yaml:"reuse_enriched"  env:"PIPELINE_REUSE_ENRICHED"`
}

// EnrichmentConfig holds kanji provider settings.
type EnrichmentConfig struct {
	Provider     string        `yaml:"provider"      env:"ENRICH_PROVIDER"      env-default:"jisho"`
	BaseURL      string        `yaml:"base_url"      env:"ENRICH_BASE_URL"`
	UserAgent    string        `yaml:"user_agent"    env:"ENRICH_USER_AGENT"    env-default:"nihongo-dataset/1.0"`
	Workers      int           `yaml:"workers"       env:"ENRICH_WORKERS"       env-default:"10"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"ENRICH_FETCH_TIMEOUT" env-default:"10s"`
}

// MetricsConfig holds batch metrics export settings. An empty path
// disables the export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" env:"METRICS_TEXTFILE_PATH"`
}

// Known kanji providers.
const (
	ProviderJisho    = "jisho"
	ProviderKanjiAPI = "kanjiapi"
)
