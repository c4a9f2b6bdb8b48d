package config

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DumpNone   = ""
	DumpTokens = "tokens"
	DumpAST    = "ast"
)

type Config struct {
	LogLevel  string
	LogFormat string
	Prelude   bool
	Dump      string
}

// Load reads settings from, in order of precedence, command line flags,
// SCURRY_* environment variables, an optional config file and defaults.
// It returns the remaining positional arguments.
func Load(args []string) (*Config, []string, error) {
	v := viper.New()
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("interpreter.prelude", false)
	v.SetDefault("dump", DumpNone)

	v.SetEnvPrefix("scurry")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("scurry", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	fs.String("log-format", "text", "log format: text or json")
	fs.Bool("prelude", false, "load the list prelude before running")
	fs.String("dump", DumpNone, "print the program as tokens or ast instead of running it")
	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Wrap(err, "parsing flags")
	}

	for key, flag := range map[string]string{
		"log.level":           "log-level",
		"log.format":          "log-format",
		"interpreter.prelude": "prelude",
		"dump":                "dump",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, nil, errors.Wrapf(err, "binding flag %s", flag)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	cfg := &Config{
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		Prelude:   v.GetBool("interpreter.prelude"),
		Dump:      v.GetString("dump"),
	}
	switch cfg.Dump {
	case DumpNone, DumpTokens, DumpAST:
	default:
		return nil, nil, errors.Errorf("unknown dump mode %q", cfg.Dump)
	}
	return cfg, fs.Args(), nil
}

// Logger builds a logrus logger writing to out.
func (c *Config) Logger(out io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text":
		logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	default:
		return nil, errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return logger, nil
}
