package settings

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerMode = "release"
	defaultServerPort = 8080
	defaultLogLevel   = "info"
	defaultMaxSize    = 100 // Megabytes
	defaultMaxBackups = 3
	defaultMaxAge     = 28 // Days
	defaultBatchSize  = 64
	defaultWorkers    = 1
)

var validate = validator.New()

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that queue names are unique.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	seen := make(map[string]struct{}, len(c.MessageQueues))
	for _, q := range c.MessageQueues {
		if _, dup := seen[q.Name]; dup {
			return errors.Errorf("invalid config: duplicate message queue %q", q.Name)
		}
		seen[q.Name] = struct{}{}
	}
	return nil
}

// Queue returns the queue configuration with the given name.
func (c *Config) Queue(name string) (MessageQueue, bool) {
	for _, q := range c.MessageQueues {
		if q.Name == name {
			return q, true
		}
	}
	return MessageQueue{}, false
}

// setDefaults fills zero values with defaults
func (c *Config) setDefaults() {
	if c.Server.Mode == "" {
		c.Server.Mode = defaultServerMode
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultServerPort
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaultLogLevel
	}
	if c.Logger.MaxSize == 0 {
		c.Logger.MaxSize = defaultMaxSize
	}
	if c.Logger.MaxBackups == 0 {
		c.Logger.MaxBackups = defaultMaxBackups
	}
	if c.Logger.MaxAge == 0 {
		c.Logger.MaxAge = defaultMaxAge
	}
	for i := range c.MessageQueues {
		q := &c.MessageQueues[i]
		if q.Workers == 0 {
			q.Workers = defaultWorkers
		}
		if q.BatchSize == 0 {
			q.BatchSize = defaultBatchSize
		}
	}
}
