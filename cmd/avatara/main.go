package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mkovalenko/avatara/internal/auth"
	"github.com/mkovalenko/avatara/internal/cli"
	"github.com/mkovalenko/avatara/internal/db"
	"github.com/mkovalenko/avatara/internal/llm"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/service"
	"github.com/mkovalenko/avatara/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine app home: env var or default ~/.avatara
	home := os.Getenv("AVATARA_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		home = filepath.Join(userHome, ".avatara")
	}

	// Open database
	database, err := db.OpenDB(filepath.Join(home, "avatara.db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	coachRepo := repository.NewSQLiteCoachRepo(database)
	personaRepo := repository.NewSQLitePersonaRepo(database)
	materialRepo := repository.NewSQLiteMaterialRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)

	// Wire file storage
	files, err := storage.NewFSStore(filepath.Join(home, "files"))
	if err != nil {
		return fmt.Errorf("opening file storage: %w", err)
	}

	app := &cli.App{
		Personas:  service.NewPersonaService(personaRepo, materialRepo, messageRepo, files),
		Materials: service.NewMaterialService(materialRepo, files),
		History:   service.NewHistoryService(messageRepo),
		Auth:      auth.NewFileProvider(home, coachRepo),
		Files:     files,
	}

	// Detect interactive terminal for the chat entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the completion client only when a key is configured.
	llmCfg := llm.LoadConfig()
	if llmCfg.Configured() {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		app.LLM = llm.NewGeminiClient(llmCfg, observer)
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
