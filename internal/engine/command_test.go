package engine

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

type scriptRunner map[string]string

func (s scriptRunner) Run(command string) (string, error) {
	out, ok := s[command]
	if !ok {
		return "", errors.New("exit status 1")
	}
	return out, nil
}

func TestFindCommandsInOrder(t *testing.T) {
	cmds := FindCommands("{{first}} mid {{second}} [[not a cmd]]")
	if len(cmds) != 2 || cmds[0] != "first" || cmds[1] != "second" {
		t.Fatalf("got %v", cmds)
	}
}

func TestExecuteInlineSubstitutesTrimmedOutput(t *testing.T) {
	out, diags := ExecuteInline("today is {{date}}!", scriptRunner{"date": "2026-08-30\n"})
	if out != "today is 2026-08-30!" {
		t.Fatalf("got %q", out)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
}

func TestExecuteInlineFailureIsolated(t *testing.T) {
	out, diags := ExecuteInline("{{bad}} then {{good}}", scriptRunner{"good": "ok"})
	if !strings.Contains(out, "<!-- Command failed: ") {
		t.Fatalf("missing failure marker in %q", out)
	}
	if !strings.HasSuffix(out, " then ok") {
		t.Fatalf("later command did not run: %q", out)
	}
	if len(diags) != 1 || diags[0].Kind != DiagCommandError {
		t.Fatalf("diagnostics %v", diags)
	}
}

func TestShellRunnerEcho(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell assertion written for sh")
	}
	out, err := ShellRunner{}.Run("echo hi")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "hi" {
		t.Fatalf("got %q", out)
	}
}

func TestShellRunnerFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell assertion written for sh")
	}
	_, err := ShellRunner{}.Run("false")
	if err == nil {
		t.Fatal("expected error from false")
	}
}
