// Package cli wires configuration and flags into the reader program.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hurbes/gita-tui/internal/gita"
	"github.com/hurbes/gita-tui/internal/settings"
	"github.com/hurbes/gita-tui/internal/theme"
	"github.com/hurbes/gita-tui/internal/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "gita",
	Short:        "gita — read the Bhagavad Gita in your terminal",
	SilenceUsage: true,
	RunE:         runReader,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default <user config dir>/gita/config.yaml)")
	rootCmd.PersistentFlags().String("source", gita.DefaultSource, "chapter feed URL")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs to gita.log")

	rootCmd.Flags().String("theme", "", "color theme: saffron, peacock, lotus")
	rootCmd.Flags().Bool("no-alt-screen", false, "disable the alternate screen buffer")
	rootCmd.Flags().Bool("no-restore", false, "start at the first verse instead of the last read position")

	_ = viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("theme", rootCmd.Flags().Lookup("theme"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "gita"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GITA")
	viper.AutomaticEnv()

	// A missing config file is fine; flags and defaults carry the session.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Printf("[config] %v", err)
		}
	}
}

func runReader(cmd *cobra.Command, args []string) error {
	if viper.GetBool("debug") {
		f, err := tea.LogToFile("gita.log", "gita")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		// The TUI owns the terminal; stray log writes would corrupt it.
		log.SetOutput(io.Discard)
	}

	settingsPath, pathErr := settings.DefaultPath()
	var saved settings.Settings
	if pathErr == nil {
		loaded, err := settings.Load(settingsPath)
		if err != nil {
			log.Printf("[settings] ignoring unreadable settings: %v", err)
		} else {
			saved = loaded
		}
	}

	themeName := viper.GetString("theme")
	if themeName == "" {
		themeName = saved.Theme
	}

	noRestore, _ := cmd.Flags().GetBool("no-restore")
	model := tui.New(tui.Config{
		Client:          gita.NewClient(viper.GetString("source")),
		Theme:           theme.Get(themeName),
		Restore:         saved,
		RestorePosition: !noRestore,
	})

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if altOff, _ := cmd.Flags().GetBool("no-alt-screen"); !altOff {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return fmt.Errorf("run reader: %w", err)
	}

	if m, ok := final.(*tui.Model); ok && pathErr == nil && !m.Session().Empty() {
		if err := settings.Save(settingsPath, m.Snapshot()); err != nil {
			log.Printf("[settings] save failed: %v", err)
		}
	}
	return nil
}
