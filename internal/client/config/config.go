package config

import "time"

// Config holds runtime settings for the RagVault CLI.
type Config struct {
	ServerEndpointAddr string        `env:"RAGVAULT_SERVER"`
	DatabasePath       string        `env:"RAGVAULT_CLIENT_DB"`
	RequestTimeout     time.Duration `env:"RAGVAULT_REQUEST_TIMEOUT"`
	UploadTimeout      time.Duration `env:"RAGVAULT_UPLOAD_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "ragvault.db"
	c.RequestTimeout = 10 * time.Second
	c.UploadTimeout = 2 * time.Minute
}

// LoadConfig applies defaults, the config file and the environment. Flags
// are applied later by cobra through BindFlags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	return cfg
}
