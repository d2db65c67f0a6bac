// Datagen TUI — терминальный интерфейс генератора синтетических данных.
//
// Основная точка входа для интерактивного интерфейса: ввод промпта,
// живой лог генерации, превью записей, сохранение в CSV по /save.
//
// Использование:
//
//	./datagen-tui product_schema.json
//	./datagen-tui -model smart schemas/employee_schema.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/app"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/debug"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/output"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/prompt"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/session"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/tui"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "Path to config.yaml (default: ./config.yaml)")
		modelName   = flag.String("model", "", "Model alias from config (default: models.default)")
		recordsFlag = flag.Int("records", 0, "Default records per generation")
		promptFile  = flag.String("prompt", "", "Prompt template name from prompts dir")
		debugFlag   = flag.Bool("debug", false, "Write a debug trace for every generation")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("datagen-tui version %s\n", Version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: schema argument is required")
		fmt.Fprintln(os.Stderr, "Usage: datagen-tui [flags] <schema.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// .env опционален: ключи могут прийти из обычного окружения
	_ = godotenv.Load()

	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *configPath})
	if err != nil {
		return err
	}

	if *debugFlag {
		cfg.App.Debug = true
	}

	if err := utils.InitLogger(cfg.App.LogsDir); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	utils.Info("Application started", "version", Version, "config", cfgPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := app.Initialize(ctx, cfg, app.Options{
		SchemaArg:  flag.Arg(0),
		ModelName:  *modelName,
		PromptFile: *promptFile,
	})
	if err != nil {
		return err
	}

	defaultRecords := *recordsFlag
	if defaultRecords <= 0 {
		defaultRecords = cfg.Generation.DefaultRecords
	}

	// Port & Adapter: генератор шлёт события, TUI подписывается
	subscriber := comps.Generator.Subscribe()

	schemaName := comps.Schema.Title
	if schemaName == "" {
		schemaName = filepath.Base(comps.SchemaFile)
	}

	model := tui.NewModel(subscriber, tui.UIConfig{
		Colors:         tui.GetColorScheme(cfg.App.ColorScheme),
		SchemaName:     schemaName,
		ModelName:      comps.ModelName,
		DefaultRecords: defaultRecords,
		ShowTimestamp:  true,
		Debug:          cfg.App.Debug,
	})

	model.OnGenerate(func(userPrompt string, count int) {
		// Трейс на каждый запуск
		var recorder *debug.Recorder
		if cfg.App.Debug {
			if rec, recErr := debug.NewRecorder(debug.RecorderConfig{
				LogsDir:         cfg.App.LogsDir,
				IncludeMessages: true,
			}); recErr == nil {
				recorder = rec
			} else {
				utils.Warn("Recorder unavailable", "error", recErr)
			}
		}
		comps.Generator.SetRecorder(recorder)

		started := time.Now()
		result, genErr := comps.Generator.Generate(ctx, prompt.GenerationRequest{
			Prompt:  userPrompt,
			Records: count,
		})
		if recorder != nil {
			if _, traceErr := recorder.Finalize(time.Since(started)); traceErr != nil {
				utils.Warn("Debug trace not written", "error", traceErr)
			}
		}
		if genErr != nil {
			// Ошибка уже ушла в TUI событием
			return
		}

		comps.Session.AddRun(session.Run{
			Prompt:    userPrompt,
			Requested: count,
			Records:   result.Records,
			Duration:  result.Duration,
		})
	})

	model.OnSave(func(filename string) (string, int, error) {
		last, err := comps.Session.LastRun()
		if err != nil {
			return "", 0, err
		}

		path := output.ResolvePath(filename, cfg.App.OutputDir)
		if err := output.WriteCSV(path, comps.Schema.PropertyNames(), last.Records); err != nil {
			return "", 0, err
		}
		utils.Info("CSV saved", "path", path, "records", len(last.Records))

		if err := comps.Session.MarkSaved(path); err != nil {
			utils.Warn("Session bookkeeping failed", "error", err)
		}

		if comps.S3 != nil {
			objectName, s3Err := comps.S3.UploadCSV(ctx, path)
			if s3Err != nil {
				utils.Error("S3 upload failed", "path", path, "error", s3Err)
			} else {
				utils.Info("Dataset uploaded", "bucket", comps.S3.Bucket(), "object", objectName)
			}
		}

		return path, len(last.Records), nil
	})

	model.SetStatusExtra(func() string {
		runs, _, saved := comps.Session.Stats()
		if runs == 0 {
			return ""
		}
		return fmt.Sprintf("Runs: %d | Saved: %d", runs, saved)
	})

	utils.Info("Starting TUI", "schema", comps.SchemaFile, "model", comps.ModelName)

	if err := model.Run(); err != nil {
		utils.Error("TUI error", "error", err)
		return err
	}

	runs, totalRecords, saved := comps.Session.Stats()
	fmt.Printf("Session summary: %d run(s), %d record(s), %d file(s) saved\n", runs, totalRecords, saved)
	utils.Info("Application exited", "runs", runs, "records", totalRecords, "saved", saved)
	return nil
}
