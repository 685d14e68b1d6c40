package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapshoot/pkg/settings"
)

// settingsCommand creates the settings management command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the persisted export settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, store, err := c.loadSettings()
			if err != nil {
				return err
			}
			printDetail("%s", store.Path())
			for _, k := range settings.Keys() {
				v, _ := s.Get(k)
				printKeyValue(k, v)
			}
			return nil
		},
	}

	cmd.AddCommand(c.settingsGetCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsResetCommand())
	cmd.AddCommand(c.settingsPathCommand())

	return cmd
}

func completeSettingKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return settings.Keys(), cobra.ShellCompDirectiveNoFileComp
}

// settingsGetCommand creates the "settings get" subcommand.
func (c *CLI) settingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print one setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSettings()
			if err != nil {
				return err
			}
			v, err := s.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// settingsSetCommand creates the "settings set" subcommand.
func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Change one setting",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSettingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, store, err := c.loadSettings()
			if err != nil {
				return err
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := store.Save(s); err != nil {
				return err
			}
			v, _ := s.Get(args[0])
			printSuccess("%s = %s", args[0], v)
			return nil
		},
	}
}

// settingsResetCommand creates the "settings reset" subcommand.
func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.NewStore(c.configPath)
			if err != nil {
				return err
			}
			if err := store.Reset(); err != nil {
				return err
			}
			printSuccess("Settings reset to defaults")
			return nil
		},
	}
}

// settingsPathCommand creates the "settings path" subcommand.
func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.NewStore(c.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}
