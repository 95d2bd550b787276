package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the runtime configuration read from file, environment and flags.
// The metadata filename and deny list are not part of it.
type Config struct {
	Columns []string `mapstructure:"columns"`
	Exclude []string `mapstructure:"exclude"`
	Format  string   `mapstructure:"format"`
	Title   string   `mapstructure:"title"`
	File    string   `mapstructure:"-"`
}

// LoadConfig reads configuration with increasing precedence from defaults,
// a config file, DDC_* environment variables and the given flags.
//
// configFile forces a specific file; otherwise FindConfig is tried from the
// working directory and then the home directory. A missing file is not an
// error, an unreadable one is.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("columns", defaultOptions().columns)
	v.SetDefault("exclude", []string{})
	v.SetDefault("format", FormatMarkdown)
	v.SetDefault("title", DefaultTitle)

	v.SetEnvPrefix("DDC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"columns": "columns",
			"exclude": "exclude",
			"format":  "format",
			"title":   "title",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile == "" {
		configFile = discoverConfig()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	// Environment values arrive as one string; split them like flags do.
	cfg.Columns = splitList(cfg.Columns)
	cfg.Exclude = splitList(cfg.Exclude)
	cfg.File = v.ConfigFileUsed()

	return &cfg, nil
}

// Options converts the configuration into service options.
func (c *Config) Options() []Option {
	return []Option{
		WithColumns(c.Columns...),
		WithExclude(c.Exclude...),
		WithFormat(c.Format),
		WithTitle(c.Title),
	}
}

func discoverConfig() string {
	if wd, err := os.Getwd(); err == nil {
		if path, err := FindConfig(wd); err == nil {
			return path
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range ConfigNames {
			if path := filepath.Join(home, name); isFile(path) {
				return path
			}
		}
	}
	return ""
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
