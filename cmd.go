package main

import (
	"os"

	"github.com/spf13/cobra"
)

func SetupCommands(a *App) *cobra.Command {
	cfg := a.cfg

	// root command, runs the interactive grid
	rootCmd := &cobra.Command{
		Use:           "lecturegrid",
		Short:         "Weekly timetable that builds class folders and links",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("driver") && !cmd.Flags().Changed("store") && os.Getenv("LECTUREGRID_STORE") == "" {
				cfg.StorePath = cfg.DefaultStorePath()
			}

			interactive := !cmd.HasParent()

			// keep command output readable unless asked otherwise
			if !interactive && cfg.LogFile == "" && !cmd.Flags().Changed("log-level") && os.Getenv("LECTUREGRID_LOG_LEVEL") == "" {
				cfg.LogLevel = "warn"
			}

			return a.Open(interactive)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Interactive()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.StorePath, "store", cfg.StorePath, "file the timetables are saved to")
	flags.StringVar(&cfg.StoreDriver, "driver", cfg.StoreDriver, "store format: json or sqlite")
	flags.StringVar(&cfg.LinkKind, "link-kind", cfg.LinkKind, "link format: auto, desktop, url or symlink")
	flags.StringVar(&cfg.Days, "days", cfg.Days, "weekday labels: ja or en")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flags.DurationVar(&cfg.AutoSave, "autosave", cfg.AutoSave, "auto-save interval of the interactive grid")

	// print the current timetable
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Show()
		},
	}

	// set or clear one slot
	setCmd := &cobra.Command{
		Use:   "set [period] [day] [label]",
		Short: "Set a slot, an empty label clears it",
		Args:  cobra.RangeArgs(2, 3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return []string{"1", "2", "3", "4", "5"}, cobra.ShellCompDirectiveNoFileComp
			case 1:
				return []string{"mon", "tue", "wed", "thu", "fri"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var label string
			if len(args) > 2 {
				label = args[2]
			}

			return a.SetCell(args[0], args[1], label)
		},
	}

	// show or change the class and link folders
	var source, links string
	foldersCmd := &cobra.Command{
		Use:   "folders",
		Short: "Show or set the class folder and the link folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src, lnk *string
			if cmd.Flags().Changed("source") {
				src = &source
			}
			if cmd.Flags().Changed("links") {
				lnk = &links
			}

			return a.SetFolders(src, lnk)
		},
	}
	foldersCmd.Flags().StringVar(&source, "source", "", "folder the class folders are created in")
	foldersCmd.Flags().StringVar(&links, "links", "", "folder the links are written to")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Create class folders and links for the current timetable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Generate()
		},
	}

	var yes bool
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove everything in the link folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Clean(yes)
		},
	}
	cleanCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	saveAsCmd := &cobra.Command{
		Use:   "save-as [name]",
		Short: "Save the current timetable under a new name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.SaveAs(args[0])
		},
	}

	// switch timetables, without a name a menu is shown
	loadCmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Switch to a saved timetable",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			if err := a.Open(false); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer a.Close()

			return a.session.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}

			return a.Load(name)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved timetables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.List()
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the current timetable with one read from a .docx or .xlsx file",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"docx", "xlsx"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Import(args[0])
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the current timetable to an .xlsx file",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"xlsx"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Export(args[0])
		},
	}

	// add commands
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(saveAsCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	return rootCmd
}
