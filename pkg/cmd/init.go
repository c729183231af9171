package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mvnget/mvnget/pkg/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Configure the default repository",
		Long:  "Prompts for a repository URL and optional credentials, then writes ~/.mvnget/config.toml.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		Repository: config.Repository{URL: config.DefaultRepositoryURL},
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository URL").
				Value(&cfg.Repository.URL),
			huh.NewInput().
				Title("Username (leave empty for anonymous access)").
				Value(&cfg.Repository.Username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Repository.Password),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	path, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
