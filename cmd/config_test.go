package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/osutil"
)

type failingPathProvider struct {
	mockPathProvider
}

func (f *failingPathProvider) UserConfigDir() (string, error) {
	return "", errors.New("no config directory")
}

func userConfigPath(env *testEnv) string {
	return filepath.Join(env.home, ".config", config.AppName, config.ConfigFile)
}

func writeUserConfig(t *testing.T, env *testEnv, content string) string {
	t.Helper()
	path := userConfigPath(env)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestShowConfig_NoConfigFile(t *testing.T) {
	env := setupCmdTest(t, "", "")

	showConfig("")

	output := env.stdout.String()
	for _, want := range []string{
		"Config file:     " + userConfigPath(env),
		"No config file (using defaults)",
		"Week Start Day:  monday",
		"Timezone:        Local",
		"Attribution:     opening",
		"(gtimelog default)",
		"Editor:          vi (from environment)",
		"Theme:           dracula (default)",
		"Tip: Run 'timelog config --init'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if env.exitCode != -1 {
		t.Errorf("expected no exit, got %d", env.exitCode)
	}
}

func TestShowConfig_ValidConfigFile(t *testing.T) {
	env := setupCmdTest(t, "", "")
	writeUserConfig(t, env, `week_start_day = "sunday"
timezone = "Europe/London"
attribution = "closing"
log_file = "/srv/log/timelog.txt"
editor = "nano"
theme = "nord"
`)

	showConfig("")

	output := env.stdout.String()
	for _, want := range []string{
		"File exists (using custom configuration)",
		"Week Start Day:  sunday",
		"Timezone:        Europe/London",
		"Attribution:     closing",
		"Log File:        /srv/log/timelog.txt\n",
		"Editor:          nano\n",
		"Theme:           nord\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Tip:") {
		t.Error("expected no tip when the config file exists")
	}
}

func TestShowConfig_UnknownTheme(t *testing.T) {
	env := setupCmdTest(t, "", "")
	writeUserConfig(t, env, "theme = \"no-such-theme\"\n")

	showConfig("")

	if !strings.Contains(env.stdout.String(), "Theme:           no-such-theme (unknown, using dracula)") {
		t.Errorf("expected unknown theme note:\n%s", env.stdout.String())
	}
}

func TestShowConfig_FileFlagWins(t *testing.T) {
	env := setupCmdTest(t, "", "")
	writeUserConfig(t, env, "log_file = \"/srv/log/timelog.txt\"\n")

	showConfig("/tmp/other.txt")

	if !strings.Contains(env.stdout.String(), "Log File:        /tmp/other.txt\n") {
		t.Errorf("expected --file to win:\n%s", env.stdout.String())
	}
}

func TestShowConfig_InvalidConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "week_start_day = \n"},
		{"bad week start", "week_start_day = \"friday\"\n"},
		{"bad attribution", "attribution = \"middle\"\n"},
		{"bad timezone", "timezone = \"Mars/Olympus\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCmdTest(t, "", "")
			path := writeUserConfig(t, env, tt.content)

			showConfig("")

			if env.exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", env.exitCode)
			}
			errOutput := env.stderr.String()
			if !strings.Contains(errOutput, "Error: Failed to load configuration") {
				t.Errorf("unexpected stderr: %s", errOutput)
			}
			if !strings.Contains(errOutput, "valid TOML format: "+path) {
				t.Errorf("expected hint naming the config file, got: %s", errOutput)
			}
			if env.stdout.Len() != 0 {
				t.Errorf("expected no output, got: %s", env.stdout.String())
			}
		})
	}
}

func TestShowConfig_GetConfigPathError(t *testing.T) {
	env := setupCmdTest(t, "", "")
	osutil.SetProvider(&failingPathProvider{mockPathProvider{home: env.home}})

	showConfig("")

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Error: Failed to determine config file location") {
		t.Errorf("unexpected stderr: %s", env.stderr.String())
	}
}

func TestInitConfig(t *testing.T) {
	env := setupCmdTest(t, "", "")

	initConfig()

	path := userConfigPath(env)
	if env.stdout.String() != "Created "+path+"\n" {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if string(data) != config.GenerateSampleConfig() {
		t.Error("expected the sample config to be written")
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("sample config does not load: %v", err)
	}
}

func TestInitConfig_ExistingFile(t *testing.T) {
	env := setupCmdTest(t, "", "")
	path := writeUserConfig(t, env, "theme = \"nord\"\n")

	initConfig()

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "already exists") {
		t.Errorf("unexpected stderr: %s", env.stderr.String())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "theme = \"nord\"\n" {
		t.Error("existing config must not be overwritten")
	}
}

func TestInitConfig_GetConfigPathError(t *testing.T) {
	env := setupCmdTest(t, "", "")
	osutil.SetProvider(&failingPathProvider{mockPathProvider{home: env.home}})

	initConfig()

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
}

func TestListThemes(t *testing.T) {
	env := setupCmdTest(t, "", "")

	listThemes()

	lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected several themes, got %q", env.stdout.String())
	}
	marked := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "* ") {
			marked++
			if line != "* dracula" {
				t.Errorf("unexpected default marker on %q", line)
			}
		}
	}
	if marked != 1 {
		t.Errorf("expected one default theme, got %d", marked)
	}
}

func TestConfigCmd_Flags(t *testing.T) {
	t.Run("display", func(t *testing.T) {
		env := setupCmdTest(t, "", "")
		if err := env.execute(t, "config"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		if !strings.Contains(env.stdout.String(), "Configuration for timelog") {
			t.Errorf("unexpected output: %s", env.stdout.String())
		}
	})

	t.Run("init", func(t *testing.T) {
		env := setupCmdTest(t, "", "")
		if err := env.execute(t, "config", "--init"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		if _, err := os.Stat(userConfigPath(env)); err != nil {
			t.Errorf("expected config file: %v", err)
		}
	})

	t.Run("themes", func(t *testing.T) {
		env := setupCmdTest(t, "", "")
		if err := env.execute(t, "config", "--themes"); err != nil {
			t.Fatalf("Execute() returned error: %v", err)
		}
		if !strings.Contains(env.stdout.String(), "* dracula") {
			t.Errorf("unexpected output: %s", env.stdout.String())
		}
	})
}
