package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config describes a devnet node: where to listen, the genesis clock, and
// the accounts/token to seed so games can be played right away.
type Config struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	GenesisTime    uint64   `yaml:"genesisTime"`

	Token    TokenConfig      `yaml:"token"`
	Accounts []GenesisAccount `yaml:"accounts"`
}

type TokenConfig struct {
	Address string `yaml:"address"`
	Name    string `yaml:"name"`
	Symbol  string `yaml:"symbol"`
}

type GenesisAccount struct {
	Address string `yaml:"address"`
	Native  uint64 `yaml:"native"`
	Tokens  uint64 `yaml:"tokens"`
}

func Default() *Config {
	return &Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"*"},
		Token: TokenConfig{
			Address: "tok:demo",
			Name:    "Demo Token",
			Symbol:  "DEMO",
		},
	}
}

// Load reads the YAML config at path (defaults apply for anything unset),
// then applies .env / environment overrides. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Optional; a missing .env is fine.
	_ = godotenv.Load()
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	return cfg, nil
}
