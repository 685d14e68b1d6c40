package cli

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapshoot/pkg/export"
)

// revealDir shows a directory in the platform file browser. Tests replace it.
var revealDir = openFileBrowser

// openCommand creates the open command. It creates the export directory and
// shows it in the file browser, or prints its absolute path with --print.
func (c *CLI) openCommand() *cobra.Command {
	var (
		dir       string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Create the export directory and show it in the file browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSettings()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = s.ExportPath
			}
			abs, err := export.NewWriter(dir, c.Logger).EnsureDir()
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), abs)
				return nil
			}

			c.Logger.Debug("revealing export directory", "path", abs)
			if err := revealDir(abs); err != nil {
				printWarning("Could not open file browser: %v", err)
				printDetail("%s", abs)
				return nil
			}
			printSuccess("Opened %s", abs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output", "o", "", "export directory (default from settings)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the directory instead of opening it")
	return cmd
}

// openFileBrowser starts the platform opener for path without waiting for it.
func openFileBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
