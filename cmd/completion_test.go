package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "__start_timelog"},
		{"zsh", "#compdef timelog"},
		{"fish", "complete -c timelog"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			env := setupCmdTest(t, "", "")

			generateCompletion(tt.shell)

			if env.stderr.Len() != 0 {
				t.Errorf("expected no errors, got: %s", env.stderr.String())
			}
			if !strings.Contains(env.stdout.String(), tt.marker) {
				t.Errorf("%s completion missing %q", tt.shell, tt.marker)
			}
			if env.exitCode != -1 {
				t.Errorf("expected no exit, got %d", env.exitCode)
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	env := setupCmdTest(t, "", "")

	generateCompletion("tcsh")

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Error: Unsupported shell 'tcsh'") {
		t.Errorf("unexpected stderr: %s", env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("expected no output, got: %s", env.stdout.String())
	}
}

func TestCompletionCommand_Args(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"valid shell", []string{"completion", "bash"}, false},
		{"unknown shell", []string{"completion", "tcsh"}, true},
		{"missing shell", []string{"completion"}, true},
		{"too many", []string{"completion", "bash", "zsh"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCmdTest(t, "", "")

			err := env.execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompletionCommand_Help(t *testing.T) {
	for _, want := range []string{
		"timelog completion bash",
		"timelog completion zsh",
		"timelog completion fish",
		"timelog completion powershell",
	} {
		if !strings.Contains(completionCmd.Long, want) {
			t.Errorf("completion help missing %q", want)
		}
	}
}

func TestReportFlagCompletion(t *testing.T) {
	values, directive := completeAttribution(reportCmd, nil, "")
	if strings.Join(values, ",") != "opening,closing" {
		t.Errorf("attribution completions = %v", values)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}

	values, _ = completeDate(reportCmd, nil, "")
	if strings.Join(values, ",") != "today,yesterday" {
		t.Errorf("date completions = %v", values)
	}
}
