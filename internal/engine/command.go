package engine

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// FindCommands returns the inner text of every {{cmd}} token in
// document order. Used to build the safe-mode confirmation list.
func FindCommands(content string) []string {
	var cmds []string
	for _, tok := range Scan(content) {
		if tok.Kind == TokenCommand {
			cmds = append(cmds, tok.Text)
		}
	}
	return cmds
}

// Runner executes one shell command line and returns its stdout.
// Swappable in tests to avoid spawning real processes.
type Runner interface {
	Run(command string) (string, error)
}

// ShellRunner runs commands through the platform shell.
type ShellRunner struct{}

func (ShellRunner) Run(command string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("%s", strings.TrimSpace(string(ee.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// ExecuteInline replaces each {{cmd}} token with the command's trimmed
// stdout. A failing command becomes a failure marker; later commands
// still run.
func ExecuteInline(content string, runner Runner) (string, []Diagnostic) {
	tokens := Scan(content)
	var out strings.Builder
	var diags []Diagnostic
	for _, tok := range tokens {
		if tok.Kind != TokenCommand {
			out.WriteString(tok.Raw)
			continue
		}
		stdout, err := runner.Run(tok.Text)
		if err != nil {
			out.WriteString(fmt.Sprintf("<!-- Command failed: %v -->", err))
			diags = append(diags, Diagnostic{Kind: DiagCommandError, Subject: tok.Text, Message: err.Error()})
			continue
		}
		out.WriteString(strings.TrimSpace(stdout))
	}
	return out.String(), diags
}
