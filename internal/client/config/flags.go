package config

import "github.com/spf13/pflag"

// BindFlags registers the persistent CLI flags on fs, using the values
// already in c as defaults. -c/--config is declared so the parser accepts
// it; the file itself is read by LoadConfig.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.ServerEndpointAddr, "addr", "a", c.ServerEndpointAddr, "address and port of the RagVault server")
	fs.StringVarP(&c.DatabasePath, "db", "d", c.DatabasePath, "path to the local SQLite database")
	fs.DurationVarP(&c.RequestTimeout, "timeout", "t", c.RequestTimeout, "per-request timeout")
	fs.DurationVar(&c.UploadTimeout, "upload-timeout", c.UploadTimeout, "timeout for one image upload to storage")
	fs.StringP("config", "c", "", "path to a JSON or YAML config file")
}
