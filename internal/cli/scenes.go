package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// scenesCommand creates the scenes command.
func (c *CLI) scenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes <scene-dump>",
		Short: "List the scenes in a scene dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := scene.LoadFile(args[0])
			if err != nil {
				return err
			}
			t, err := scenesTable(reg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render("Scenes")+" "+StyleDim.Render(reg.Version()))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			printNextStep("Export one", "snapshoot export "+args[0]+" --index 0")
			return nil
		},
	}
}

// sceneRows returns one row per partition followed by the untracked roots.
// Columns: index, name, path, loaded, active, roots.
func sceneRows(reg scene.Registry) ([][]string, error) {
	parts, err := reg.Partitions()
	if err != nil {
		return nil, err
	}
	active, err := reg.ActivePartition()
	if err != nil {
		return nil, err
	}
	untracked, err := snapshot.ResolveUntracked(reg)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(parts)+1)
	for i, p := range parts {
		isActive := active != nil && p.Handle == active.Handle
		rows = append(rows, []string{
			strconv.Itoa(i),
			p.Name,
			p.Path,
			yesNo(p.Loaded),
			yesNo(isActive),
			strconv.Itoa(len(p.Roots)),
		})
	}
	rows = append(rows, []string{"", snapshot.UntrackedScene, "", yesNo(true), yesNo(true), strconv.Itoa(len(untracked))})
	return rows, nil
}

func scenesTable(reg scene.Registry) (*table.Table, error) {
	rows, err := sceneRows(reg)
	if err != nil {
		return nil, err
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Scene", "Path", "Loaded", "Active", "Roots").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if row < len(rows) && rows[row][3] == "no" {
				return cell.Foreground(colorDim)
			}
			return cell
		}), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
