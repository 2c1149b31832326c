package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/thomas-vilte/relnotes/internal/cli/command/audit"
	"github.com/thomas-vilte/relnotes/internal/cli/command/completion"
	configcmd "github.com/thomas-vilte/relnotes/internal/cli/command/config"
	"github.com/thomas-vilte/relnotes/internal/cli/command/generate"
	"github.com/thomas-vilte/relnotes/internal/cli/command/schedule"
	"github.com/thomas-vilte/relnotes/internal/cli/command/tracking"
	"github.com/thomas-vilte/relnotes/internal/cli/registry"
	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/thomas-vilte/relnotes/internal/logger"
	"github.com/thomas-vilte/relnotes/internal/providers"
	"github.com/thomas-vilte/relnotes/internal/ui"
	"github.com/thomas-vilte/relnotes/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	logger.Initialize(false, false)

	app, translations, err := initializeApp()
	if err != nil {
		log.Fatalf("error starting relnotes: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(config.GetLocaleConfig(cfg.Language), "")
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	provider := providers.NewReleaseNotesGenerator
	factories := map[string]registry.CommandFactory{
		"generate":   generate.NewGenerateCommandFactory(provider, os.Stdout, os.Stderr),
		"audit":      audit.NewAuditCommandFactory(provider, os.Stdout, os.Stderr),
		"tracking":   tracking.NewTrackingCommandFactory(provider, os.Stdout, os.Stderr),
		"schedule":   schedule.NewScheduleCommandFactory(os.Stdout, time.Now),
		"config":     configcmd.NewConfigCommandFactory(os.Stdin, os.Stdout),
		"completion": completion.NewCompletionCommandFactory(os.Stdout),
	}

	reg := registry.NewRegistry(cfg, translations)
	for name, factory := range factories {
		if err := reg.Register(name, factory); err != nil {
			return nil, nil, fmt.Errorf("error registering command '%s': %w", name, err)
		}
	}

	commands := reg.CreateCommands()
	commands = append(commands, &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	})

	return &cli.Command{
		Name:                  "relnotes",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
