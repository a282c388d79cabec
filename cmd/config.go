package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// configFile is looked up in the working directory. Flags always win over it.
const configFile = "dcaplan.yaml"

// Config carries store settings that would be tedious to repeat as flags.
type Config struct {
	Store      string `yaml:"store"`
	LedgerFile string `yaml:"ledgerFile"`
	SQLiteFile string `yaml:"sqliteFile"`
	Redis      struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// LoadConfig reads the config file if present. A missing or unreadable file
// yields the zero config: the command line and the defaults take over.
func LoadConfig() Config {
	var cfg Config
	data, err := os.ReadFile(configFile)
	if err != nil {
		return cfg
	}
	// an unparseable config is ignored the same way, flags still work.
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}
