package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ImportConfig holds roster import pipeline settings.
type ImportConfig struct {
	// RowTimeout bounds each per-row storage operation. A timeout rejects
	// that row as a processing_error; it never aborts the batch.
	RowTimeout time.Duration `yaml:"row_timeout"     env:"IMPORT_ROW_TIMEOUT"     env-default:"5s"`

	// MaxFileBytes caps the accepted input size. 0 disables the cap.
	MaxFileBytes int64 `yaml:"max_file_bytes"  env:"IMPORT_MAX_FILE_BYTES"  env-default:"10485760"`

	// MaxRows caps the number of data rows per batch. 0 disables the cap.
	MaxRows int `yaml:"max_rows"        env:"IMPORT_MAX_ROWS"        env-default:"50000"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
