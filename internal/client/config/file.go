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

// FileConfig is the on-disk shape of the config file.
type FileConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	DatabasePath       string          `json:"database_path" yaml:"database_path"`
	RequestTimeout     *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	UploadTimeout      *timex.Duration `json:"upload_timeout" yaml:"upload_timeout"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(fmt.Errorf("decode %s: %w", path, err))
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.UploadTimeout != nil {
		cfg.UploadTimeout = fc.UploadTimeout.Duration
	}
}
