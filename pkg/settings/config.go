package settings

type Config struct {
	Server        Server         `mapstructure:"server" yaml:"server"`
	Logger        Logger         `mapstructure:"logger" yaml:"logger"`
	MessageQueues []MessageQueue `mapstructure:"message_queues" yaml:"message_queues" validate:"dive"`
}

// Server is the configuration for the diagnostics HTTP server
type Server struct {
	Mode string `mapstructure:"mode" yaml:"mode" validate:"omitempty,oneof=debug release test"`
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port" validate:"gte=0,lte=65535"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// MessageQueue is the configuration for a single in-process queue
type MessageQueue struct {
	Name              string  `mapstructure:"name" yaml:"name" validate:"required"`
	ID                string  `mapstructure:"id" yaml:"id"`
	Capacity          int     `mapstructure:"capacity" yaml:"capacity" validate:"gte=0"`                       // 0 = unbounded
	EnqueueTimeout    int     `mapstructure:"enqueue_timeout" yaml:"enqueue_timeout" validate:"gte=0"`         // Milliseconds, 0 = wait forever
	DequeueTimeout    int     `mapstructure:"dequeue_timeout" yaml:"dequeue_timeout" validate:"gte=0"`         // Milliseconds, 0 = wait forever
	Workers           int     `mapstructure:"workers" yaml:"workers" validate:"gte=0"`                         // Consumer goroutines
	BatchSize         int     `mapstructure:"batch_size" yaml:"batch_size" validate:"gte=0"`                   // Messages per drained batch
	RateLimit         float64 `mapstructure:"rate_limit" yaml:"rate_limit" validate:"gte=0"`                   // Messages per second, 0 = unlimited
	RateBurst         int     `mapstructure:"rate_burst" yaml:"rate_burst" validate:"gte=0"`                   // Token bucket burst
	ClockResolutionMs int     `mapstructure:"clock_resolution_ms" yaml:"clock_resolution_ms" validate:"gte=0"` // 0 = system clock
}
