/*
	Package config implements command line argument and config file parsing.
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	flags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/amadigital/compass/libs/compass"
)

// Config carries the Compass service endpoints, the web-service account and
// the runtime options. Values load from a TOML file first; command line flags
// override.
type Config struct {
	ConfigPath  string `short:"c" long:"config" description:"Path to TOML config file" toml:"-"`
	Environment string `short:"e" long:"env" description:"Current environment (dev, stage, prod)" toml:"environment"`
	Debug       bool   `long:"debug" description:"Enable debug logging" toml:"debug"`
	JSONLogs    bool   `long:"json_logs" description:"Log in JSON for log shipping" toml:"json_logs"`

	Compass *CompassConfig `group:"Compass" toml:"compass"`
}

// CompassConfig configures the gateway client.
type CompassConfig struct {
	ServiceLocation           string `long:"compass_service_location" description:"Compass WCF basic endpoint" toml:"service_location"`
	MembershipServiceLocation string `long:"membership_service_location" description:"ASMX membership web service endpoint" toml:"membership_service_location"`
	Username                  string `long:"compass_username" description:"Web-service account username" toml:"username"`
	Password                  string `long:"compass_password" description:"Web-service account password" toml:"password"`
	InsecureSkipVerify        bool   `long:"compass_skip_verify" description:"Skip TLS verification for hosts with broken certificates" toml:"insecure_skip_verify"`
}

var validEnvironments = map[string]bool{
	"prod":  true,
	"stage": true,
	"dev":   true,
	"test":  true,
}

// Parse fills a Config from os.Args and the optional TOML file, returning any
// leftover positional arguments.
func Parse() (*Config, []string, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs fills a Config from the given arguments and the optional TOML
// file named by --config. Flags override file values.
func ParseArgs(args []string) (*Config, []string, error) {
	config := &Config{Compass: &CompassConfig{}}

	// First pass picks up --config; unknown flags are tolerated because the
	// second pass validates the full set.
	parser := flags.NewParser(config, flags.PrintErrors|flags.PassDoubleDash|flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(args); err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			return nil, nil, fmt.Errorf("config: failed to parse flags: %+v", err)
		}
		os.Exit(1)
	}

	if config.ConfigPath != "" {
		if _, err := toml.DecodeFile(config.ConfigPath, config); err != nil {
			return nil, nil, fmt.Errorf("config: failed to parse config file %s: %+v", config.ConfigPath, err)
		}
	}

	// Make sure command line overrides config.
	extraArgs, err := flags.ParseArgs(config, args)
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(1)
		}
		return nil, nil, err
	}

	if !validEnvironments[config.Environment] {
		fmt.Fprintf(os.Stderr, "flag --env is required and must be one of prod, stage, dev or test\n")
		os.Exit(1)
	}

	return config, extraArgs, nil
}

// CompassClientConfig translates the config into the gateway client's shape.
func (c *Config) CompassClientConfig() *compass.Config {
	return &compass.Config{
		ServiceLocation:           c.Compass.ServiceLocation,
		MembershipServiceLocation: c.Compass.MembershipServiceLocation,
		Username:                  c.Compass.Username,
		Password:                  c.Compass.Password,
		InsecureSkipVerify:        c.Compass.InsecureSkipVerify,
	}
}

// SetupLogging configures the process logger from the config.
func (c *Config) SetupLogging() *logrus.Logger {
	log := logrus.New()
	if c.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if c.JSONLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
