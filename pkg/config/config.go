// Package config loads the explorer configuration from a TOML file.
//
// The file mirrors the layout the exploration tooling has always used:
//
//	[api]
//	server   = "local"      # which entry of [servers] to use
//	version  = "v2"
//	language = "en"
//	release  = "2024-01"
//
//	[servers]
//	official = "https://id.who.int"
//	local    = "http://localhost:80"
//
//	[store]
//	backend = "file"        # memory | file | redis | mongo
//	path    = ""            # file backend; empty = XDG data dir
//	redis_addr = "localhost:6379"
//	mongo_uri  = "mongodb://localhost:27017"
//
// API credentials are never stored in the file; they come from the
// ICD_CLIENT_ID and ICD_CLIENT_SECRET environment variables and are only
// required when talking to the official server.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/polynav/polynav/pkg/errors"
)

// Config is the full explorer configuration.
type Config struct {
	API     APIConfig         `toml:"api"`
	Servers map[string]string `toml:"servers"`
	Store   StoreConfig       `toml:"store"`
}

// APIConfig selects the upstream server and request headers.
type APIConfig struct {
	Server   string `toml:"server"`
	Version  string `toml:"version"`
	Language string `toml:"language"`
	Release  string `toml:"release"`
}

// StoreConfig selects and configures the durable store backend.
type StoreConfig struct {
	Backend   string `toml:"backend"`
	Path      string `toml:"path"`
	RedisAddr string `toml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri"`
}

// Default returns the configuration used when no file is present: the
// local mirror without credentials, file-backed store.
func Default() Config {
	return Config{
		API: APIConfig{
			Server:   "local",
			Version:  "v2",
			Language: "en",
			Release:  "2024-01",
		},
		Servers: map[string]string{
			"official": "https://id.who.int",
			"local":    "http://localhost:80",
		},
		Store: StoreConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
	}
}

// Load reads the configuration from path. An empty path means the default
// location (~/.config/polynav/config.toml); a missing file at the default
// location yields Default() rather than an error, while an explicitly
// given path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultPath(); err != nil {
			return Default(), nil
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, ok := c.Servers[c.API.Server]; !ok {
		return fmt.Errorf("api.server %q has no entry under [servers]", c.API.Server)
	}
	if err := errors.ValidateLanguage(c.API.Language); err != nil {
		return fmt.Errorf("api.language: %w", err)
	}
	switch c.Store.Backend {
	case "", "memory", "file", "redis", "mongo":
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	return nil
}

// ServerURL returns the base URL of the selected upstream server.
func (c Config) ServerURL() string { return c.Servers[c.API.Server] }

// IsOfficial reports whether the official WHO server is selected, which is
// the only server requiring OAuth credentials.
func (c Config) IsOfficial() bool { return c.API.Server == "official" }

// Credentials returns the OAuth client credentials from the environment.
func Credentials() (clientID, clientSecret string) {
	return os.Getenv("ICD_CLIENT_ID"), os.Getenv("ICD_CLIENT_SECRET")
}

func defaultPath() (string, error) {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, "polynav", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "polynav", "config.toml"), nil
}
