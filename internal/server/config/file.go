package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/flagx"
	"github.com/dmitrijs2005/ragvault/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Durations accept both
// "15m" style strings and integer nanoseconds. Fields left out of the file
// keep their current value.
type FileConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                  string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	S3RootUser                   string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	PresignExpiry                *timex.Duration `json:"presign_expiry" yaml:"presign_expiry"`
	LogBackend                   string          `json:"log_backend" yaml:"log_backend"`
}

// decodeFile picks the decoder by extension: .yaml/.yml use YAML, anything
// else JSON.
func decodeFile(path string, data []byte, c *FileConfig) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, c)
	default:
		return json.Unmarshal(data, c)
	}
}

// parseFile loads values from the file named by -c/-config, if any. It panics
// when the file cannot be read or decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	if err := decodeFile(path, data, c); err != nil {
		panic(fmt.Errorf("decode %s: %w", path, err))
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogBackend, c.LogBackend)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PresignExpiry != nil {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
