package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mkobayashi/tabiplan/internal/config"
	"github.com/mkobayashi/tabiplan/internal/engine"
	"github.com/mkobayashi/tabiplan/internal/extract"
	"github.com/mkobayashi/tabiplan/internal/prompts"
	"github.com/mkobayashi/tabiplan/internal/providers"
	"github.com/mkobayashi/tabiplan/internal/store"
	"github.com/mkobayashi/tabiplan/internal/tools"
)

func main() {
	// Pick up credentials from .env when present.
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("tabiplan: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tabiplan", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.json (default: user config dir)")
	dbPath := fs.String("db", "", "path to the attractions database")
	provider := fs.String("provider", "", "model provider: openai or anthropic")
	model := fs.String("model", "", "model name, e.g. qwen-flash")
	budget := fs.Float64("budget", 0, "budget ceiling for the run")
	maxSteps := fs.Int("max-steps", 0, "planning iteration cap")
	initDB := fs.Bool("init", false, "create the database and load the starter dataset")
	addText := fs.Bool("add", false, "extract an attraction from free text on stdin and store it")
	verbose := fs.Bool("v", false, "log planning progress")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if *provider != "" {
		cfg.Provider = *provider
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *budget > 0 {
		cfg.BudgetLimit = *budget
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	cfg.ApplyDefaults()

	s, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if *initDB {
		added, err := seedDatabase(ctx, s)
		if err != nil {
			return err
		}
		fmt.Printf("database ready at %s (%d attractions added)\n", cfg.DBPath, added)
		return nil
	}

	if *addText {
		return runAdd(ctx, cfg, s)
	}

	planner, err := buildPlanner(cfg, s, *maxSteps, *verbose)
	if err != nil {
		return err
	}

	if query := strings.TrimSpace(strings.Join(fs.Args(), " ")); query != "" {
		return runOnce(ctx, planner, query)
	}

	// Interactive sessions can outlive external writers; keep the search
	// index fresh while the REPL runs.
	if watcher, err := store.NewWatcher(s); err == nil {
		if err := watcher.Start(); err == nil {
			defer watcher.Stop()
		}
	}
	return runREPL(ctx, planner)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	manager, err := config.NewManager()
	if err != nil {
		return &config.Config{}, nil
	}
	return manager.Load()
}

func buildPlanner(cfg *config.Config, s *store.Store, maxSteps int, verbose bool) (*engine.Planner, error) {
	llm, err := providers.NewLLMClient(cfg)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry(s)

	plannerCfg := engine.PlannerConfig{
		Model:         cfg.Model,
		BudgetLimit:   cfg.BudgetLimit,
		MaxIterations: maxSteps,
		SystemPrompt:  prompts.BuildSystemPrompt(registry),
	}

	var hooks []engine.Hook
	if verbose {
		hooks = append(hooks, engine.LoggerHook{L: log.New(os.Stderr, "", log.LstdFlags)})
	}

	return engine.NewPlanner(llm, registry, plannerCfg, hooks...), nil
}

func runAdd(ctx context.Context, cfg *config.Config, s *store.Store) error {
	text, err := readAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read attraction text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no attraction text on stdin")
	}

	llm, err := providers.NewLLMClient(cfg)
	if err != nil {
		return err
	}
	extractor, err := extract.NewExtractor(llm, cfg.Model)
	if err != nil {
		return err
	}

	a, err := extractor.Extract(ctx, text)
	if err != nil {
		return err
	}
	if err := s.Add(ctx, a); err != nil {
		return err
	}
	fmt.Printf("added %s (%s, %s)\n", a.Name, a.Ward, a.City)
	return nil
}
