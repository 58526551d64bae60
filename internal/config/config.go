package config

import (
	"fmt"
	"time"
)

type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	LLM          LLMConfig          `yaml:"llm"`
	Summary      SummaryConfig      `yaml:"summary"`
	Storage      StorageConfig      `yaml:"storage"`
	Records      RecordsConfig      `yaml:"records"`
	Notification NotificationConfig `yaml:"notification"`
	Trigger      TriggerConfig      `yaml:"trigger"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Output       OutputConfig       `yaml:"output"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LLMConfig struct {
	APIKeys         []string `yaml:"api_keys"`
	Model           string   `yaml:"model"`
	MaxOutputTokens int32    `yaml:"max_output_tokens"`
	Temperature     float32  `yaml:"temperature"`
}

type SummaryConfig struct {
	ChunkSize               int      `yaml:"chunk_size"`
	ChunkOverlap            *int     `yaml:"chunk_overlap"`
	Separators              []string `yaml:"separators"`
	MaxWords                int      `yaml:"max_words"`
	MaxConcurrent           int      `yaml:"max_concurrent"`
	ReduceContextChars      int      `yaml:"reduce_context_chars"`
	MaxReduceDepth          int      `yaml:"max_reduce_depth"`
	ReturnIntermediateSteps bool     `yaml:"return_intermediate_steps"`
}

// StorageConfig selects the object store. Backend is "fs" or "redis".
type StorageConfig struct {
	Backend            string      `yaml:"backend"`
	Root               string      `yaml:"root"`
	Redis              RedisConfig `yaml:"redis"`
	TranscriptsPrefix  string      `yaml:"transcripts_prefix"`
	NotesPrefix        string      `yaml:"notes_prefix"`
	CompiledPrefix     string      `yaml:"compiled_prefix"`
	TranslationsPrefix string      `yaml:"translations_prefix"`
	DocumentsPrefix    string      `yaml:"documents_prefix"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// RecordsConfig selects the record store. Backend is "postgres" or "cassandra".
type RecordsConfig struct {
	Backend   string          `yaml:"backend"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Cassandra CassandraConfig `yaml:"cassandra"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type CassandraConfig struct {
	Hosts    []string      `yaml:"hosts"`
	Keyspace string        `yaml:"keyspace"`
	Table    string        `yaml:"table"`
	Timeout  time.Duration `yaml:"timeout"`
}

type NotificationConfig struct {
	Enabled bool     `yaml:"enabled"`
	From    string   `yaml:"from"`
	Subject string   `yaml:"subject"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// TriggerConfig selects how storage events arrive. Mode is "watch" or "kafka".
type TriggerConfig struct {
	Mode          string   `yaml:"mode"`
	MaxConcurrent int      `yaml:"max_concurrent"`
	Brokers       []string `yaml:"brokers"`
	Topic         string   `yaml:"topic"`
	GroupID       string   `yaml:"group_id"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

func (c *Config) Validate() error {
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required")
	}

	switch c.Storage.Backend {
	case "", "fs":
		c.Storage.Backend = "fs"
		if c.Storage.Root == "" {
			return fmt.Errorf("storage.root is required for the fs backend")
		}
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("storage.backend %q is not supported", c.Storage.Backend)
	}

	switch c.Records.Backend {
	case "postgres":
		if c.Records.Postgres.DSN == "" {
			return fmt.Errorf("records.postgres.dsn is required")
		}
	case "cassandra":
		if len(c.Records.Cassandra.Hosts) == 0 {
			return fmt.Errorf("records.cassandra.hosts is required")
		}
		if c.Records.Cassandra.Keyspace == "" {
			return fmt.Errorf("records.cassandra.keyspace is required")
		}
	default:
		return fmt.Errorf("records.backend %q is not supported", c.Records.Backend)
	}

	if c.Notification.Enabled && c.Notification.From == "" {
		return fmt.Errorf("notification.from is required when notification is enabled")
	}

	switch c.Trigger.Mode {
	case "", "watch":
		c.Trigger.Mode = "watch"
		if c.Storage.Backend != "fs" {
			return fmt.Errorf("trigger.mode watch requires the fs storage backend")
		}
	case "kafka":
		if len(c.Trigger.Brokers) == 0 {
			return fmt.Errorf("trigger.brokers is required for the kafka trigger")
		}
		if c.Trigger.Topic == "" {
			return fmt.Errorf("trigger.topic is required for the kafka trigger")
		}
	default:
		return fmt.Errorf("trigger.mode %q is not supported", c.Trigger.Mode)
	}

	if c.Summary.ChunkSize == 0 {
		c.Summary.ChunkSize = 1000
	}
	// nil means unset; an explicit 0 is kept
	if c.Summary.ChunkOverlap == nil {
		overlap := 350
		c.Summary.ChunkOverlap = &overlap
	}
	if *c.Summary.ChunkOverlap < 0 || *c.Summary.ChunkOverlap >= c.Summary.ChunkSize {
		return fmt.Errorf("summary.chunk_overlap must be in [0, summary.chunk_size)")
	}
	if len(c.Summary.Separators) == 0 {
		c.Summary.Separators = []string{"\n\n", "\n", ".", " "}
	}
	if c.Summary.MaxWords == 0 {
		c.Summary.MaxWords = 200
	}
	if c.Summary.MaxConcurrent == 0 {
		c.Summary.MaxConcurrent = 4
	}
	if c.Summary.ReduceContextChars == 0 {
		c.Summary.ReduceContextChars = 12000
	}
	if c.Summary.MaxReduceDepth == 0 {
		c.Summary.MaxReduceDepth = 4
	}

	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.MaxOutputTokens == 0 {
		c.LLM.MaxOutputTokens = 512
	}

	if c.Storage.TranscriptsPrefix == "" {
		c.Storage.TranscriptsPrefix = "transcripts"
	}
	if c.Storage.NotesPrefix == "" {
		c.Storage.NotesPrefix = "notes"
	}
	if c.Storage.CompiledPrefix == "" {
		c.Storage.CompiledPrefix = "compiled"
	}
	if c.Storage.TranslationsPrefix == "" {
		c.Storage.TranslationsPrefix = "translations"
	}
	if c.Storage.DocumentsPrefix == "" {
		c.Storage.DocumentsPrefix = "documents"
	}

	if c.Records.Postgres.Table == "" {
		c.Records.Postgres.Table = "transcripts"
	}
	if c.Records.Cassandra.Table == "" {
		c.Records.Cassandra.Table = "transcripts"
	}
	if c.Records.Cassandra.Timeout == 0 {
		c.Records.Cassandra.Timeout = 10 * time.Second
	}

	if c.Notification.Subject == "" {
		c.Notification.Subject = "Transcribe: Your file has been transcribed and summarised"
	}
	if c.Notification.Topic == "" {
		c.Notification.Topic = "notes.notifications"
	}

	if c.Trigger.MaxConcurrent == 0 {
		c.Trigger.MaxConcurrent = 2
	}
	if c.Trigger.GroupID == "" {
		c.Trigger.GroupID = "meeting-notes-pipeline"
	}

	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}

	return nil
}
