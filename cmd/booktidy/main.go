package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"booktidy/cmd/booktidy/cli"
	"booktidy/internal/config"
	"booktidy/internal/log"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
	theme   string
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "booktidy",
		Short:   "A library filename tidying tool",
		Long:    `Booktidy normalizes e-book filenames, compares libraries and keeps a Kobo device's collections in sync with the books on it.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				cli.PrintWarning(fmt.Sprintf("Warning: %v", configErr))
				cli.PrintInfo("Using default settings. Run 'booktidy setup' to configure.")
				cfg = config.New()
			}
			if debug {
				cfg.Settings.Debug = true
			}
			log.SetDebug(cfg.Settings.Debug)
			if theme != "" && !cli.SetTheme(theme) {
				cli.PrintWarning("Unknown theme: " + theme)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/booktidy/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "color theme (default, dark, gruvbox)")

	rootCmd.AddCommand(NewShellCmd())
	rootCmd.AddCommand(NewSetupCmd())

	return rootCmd
}

// NewShellCmd creates the interactive shell command
func NewShellCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "shell [directory]",
		Short: "Start the interactive book tidying shell",
		Long:  `Start the numbered-menu shell that operates on the books of one directory at a time.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetDir := dir
			if targetDir == "" && len(args) > 0 {
				targetDir = args[0]
			}
			if targetDir == "" {
				targetDir = cfg.Library.Default
			}

			session, err := cli.NewSession(cfg, targetDir)
			if err != nil {
				return err
			}
			cli.PrintHeader(fmt.Sprintf("booktidy %s", version))
			session.Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "d", "", "Directory with books (overrides argument, prompts when unset)")

	return cmd
}

// NewSetupCmd writes a default configuration file for later editing.
func NewSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				path = filepath.Join(home, ".config", "booktidy", "config.yaml")
			}
			if _, err := os.Stat(path); err == nil {
				cli.PrintWarning("Configuration file already exists: " + path)
				if !cli.Confirm("Overwrite it with defaults?") {
					return nil
				}
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			cli.PrintSuccess("Configuration written to " + path)
			return nil
		},
	}
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
