package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/guidegen/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write a config file with the default settings. GUIDEGEN_ variables and
--server are applied first, so the file records the effective values.

Examples:
  guidegen config init
  guidegen config init --server http://10.0.0.2:8002 --config ./guidegen.toml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfig(configPath, serverURL, configInitForce)
		if err != nil {
			return err
		}
		printSuccess("Wrote %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// initConfig writes the validated defaults to the resolved config path and
// returns it. An existing file is kept unless force is set.
func initConfig(path, server string, force bool) (string, error) {
	path = config.ResolvePath(path)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	cfg, err := config.Defaults()
	if err != nil {
		return "", err
	}
	if server != "" {
		cfg.Server.BaseURL = server
		if err := cfg.Validate(); err != nil {
			return "", err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}
