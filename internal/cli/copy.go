package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"promptctl/internal/clipboard"
	"promptctl/internal/config"
	"promptctl/internal/engine"
	"promptctl/internal/store"
	"promptctl/internal/system"
)

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().Bool("raw", false, "copy literal content without resolving tokens")
	copyCmd.Flags().Bool("stdout", false, "print to stdout instead of the clipboard")
	copyCmd.Flags().Bool("yes", false, "skip the safe-mode command confirmation")
}

// terminalConfirm asks on the controlling terminal before commands run.
type terminalConfirm struct{}

func (terminalConfirm) Confirm(commands []string) bool {
	fmt.Fprintln(os.Stderr, "about to execute:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  $ %s\n", c)
	}
	fmt.Fprint(os.Stderr, "proceed? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// autoConfirm is used with --yes.
type autoConfirm struct{}

func (autoConfirm) Confirm([]string) bool { return true }

var copyCmd = &cobra.Command{
	Use:   "copy <name>",
	Short: "Resolve a prompt and copy it to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		raw, _ := cmd.Flags().GetBool("raw")
		toStdout, _ := cmd.Flags().GetBool("stdout")
		yes, _ := cmd.Flags().GetBool("yes")

		s, err := store.Open()
		if err != nil {
			return err
		}
		p, ok := s.Get(name)
		if !ok {
			return fmt.Errorf("prompt %q not found", name)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var confirm engine.Confirmer = terminalConfirm{}
		if yes {
			confirm = autoConfirm{}
		}
		pipe := engine.Pipeline{
			Repo:     s,
			Files:    engine.OSFileAccess{},
			Runner:   engine.ShellRunner{},
			Confirm:  confirm,
			SafeMode: cfg.SafeMode,
		}

		if !cmd.Flags().Changed("raw") && cfg.DefaultExportFormat == "raw" {
			raw = true
		}
		var out string
		if raw {
			out = pipe.CopyRaw(p.Content)
		} else {
			var diags []engine.Diagnostic
			out, diags, err = pipe.CopyResolved(name, p.Content)
			if errors.Is(err, engine.ErrAborted) {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			for _, d := range diags {
				system.Logger.Warn("resolution warning", "subject", d.Subject, "msg", d.Message)
			}
		}

		if toStdout {
			fmt.Print(out)
			return nil
		}
		if err := (clipboard.System{}).Write(out); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s (%d bytes)\n", name, len(out))
		return nil
	},
}
