package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amadigital/compass/libs/test"
)

func TestParseArgsFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compass.toml")
	test.OK(t, os.WriteFile(path, []byte(`
environment = "dev"
debug = true

[compass]
service_location = "https://compass.example.org/svc/basic"
username = "file-user"
password = "file-pass"
`), 0o600))

	cfg, extra, err := ParseArgs([]string{
		"-c", path,
		"-e", "test",
		"--compass_username", "cli-user",
		"leftover",
	})
	test.OK(t, err)
	test.Equals(t, []string{"leftover"}, extra)

	// Flags win over the file, the file fills the rest.
	test.Equals(t, "test", cfg.Environment)
	test.Equals(t, "cli-user", cfg.Compass.Username)
	test.Equals(t, "file-pass", cfg.Compass.Password)
	test.Equals(t, "https://compass.example.org/svc/basic", cfg.Compass.ServiceLocation)
	test.Equals(t, true, cfg.Debug)

	clientConfig := cfg.CompassClientConfig()
	test.Equals(t, "cli-user", clientConfig.Username)
	test.Equals(t, "https://compass.example.org/svc/basic", clientConfig.ServiceLocation)
}

func TestParseArgsNoFile(t *testing.T) {
	cfg, extra, err := ParseArgs([]string{"-e", "dev"})
	test.OK(t, err)
	test.Equals(t, 0, len(extra))
	test.Equals(t, "dev", cfg.Environment)
	test.Equals(t, false, cfg.Debug)
}
