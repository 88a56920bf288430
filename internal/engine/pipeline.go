package engine

import "errors"

// ErrAborted is returned when the user declines safe-mode command
// confirmation. Nothing reaches the clipboard in that case.
var ErrAborted = errors.New("copy aborted")

// Pipeline drives the full copy flow: resolve references, then confirm
// and execute embedded commands.
type Pipeline struct {
	Repo     Repository
	Files    FileAccess
	Runner   Runner
	Confirm  Confirmer
	SafeMode bool
}

// CopyRaw returns the content untouched. Tokens stay literal.
func (p Pipeline) CopyRaw(content string) string {
	return content
}

// CopyResolved expands references and executes commands. With safe mode
// on and commands present, the confirmer is consulted first; declining
// aborts with ErrAborted.
func (p Pipeline) CopyResolved(name, content string) (string, []Diagnostic, error) {
	resolved, diags := Resolve(content, p.Repo, p.Files, NewContext(name))
	cmds := FindCommands(resolved)
	if len(cmds) == 0 {
		return resolved, diags, nil
	}
	if p.SafeMode && p.Confirm != nil && !p.Confirm.Confirm(cmds) {
		return "", diags, ErrAborted
	}
	executed, cmdDiags := ExecuteInline(resolved, p.Runner)
	return executed, append(diags, cmdDiags...), nil
}
