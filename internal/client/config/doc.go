// Package config loads runtime configuration for the RagVault CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file named by -c/--config.
//  3. RAGVAULT_* environment variables.
//  4. Persistent command-line flags bound with (*Config).BindFlags.
//
// A JSON file looks like:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "ragvault.db",
//	  "request_timeout": "10s"
//	}
package config
