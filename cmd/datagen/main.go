// Datagen — интерактивный CLI генератора синтетических данных.
//
// Сценарий:
// 1. Пользователь описывает нужные данные свободным текстом
// 2. Модель генерирует записи по JSON схеме
// 3. Превью выводится в консоль
// 4. Подтверждённые записи сохраняются в CSV (и выгружаются в S3, если включено)
//
// Использование:
//
//	./datagen product_schema.json
//	./datagen -model smart -records 10 schemas/employee_schema.json
//	./datagen -debug product_schema.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/app"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/console"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/debug"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/generator"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm/openai"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/output"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/prompt"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/records"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/session"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// Version — версия утилиты (заполняется при сборке)
var Version = "dev"

type runOptions struct {
	configPath  string
	modelName   string
	schemaArg   string
	promptFile  string
	records     int
	temperature float64
	debug       bool
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to config.yaml (default: ./config.yaml)")
		modelName   = flag.String("model", "", "Model alias from config (default: models.default)")
		recordsFlag = flag.Int("records", 0, "Default records per generation")
		promptFile  = flag.String("prompt", "", "Prompt template name from prompts dir")
		temperature = flag.Float64("temperature", 0, "Override sampling temperature (0 = from config)")
		debugFlag   = flag.Bool("debug", false, "Write a debug trace for every generation")
		showVersion = flag.Bool("version", false, "Show version")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("datagen version %s\n", Version)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: schema argument is required")
		fmt.Fprintln(os.Stderr, "Usage: datagen [flags] <schema.json>")
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	err := run(runOptions{
		configPath:  *configPath,
		modelName:   *modelName,
		schemaArg:   flag.Arg(0),
		promptFile:  *promptFile,
		records:     *recordsFlag,
		temperature: *temperature,
		debug:       *debugFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts runOptions) error {
	// .env опционален: ключи могут прийти из обычного окружения
	_ = godotenv.Load()

	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: opts.configPath})
	if err != nil {
		return err
	}

	if opts.debug {
		cfg.App.Debug = true
	}

	if err := utils.InitLogger(cfg.App.LogsDir); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	utils.Info("Application started", "version", Version, "config", cfgPath)

	ctx, cancel := utils.SetupGracefulShutdownWithContext()
	defer cancel()

	comps, err := app.Initialize(ctx, cfg, app.Options{
		SchemaArg:  opts.schemaArg,
		ModelName:  opts.modelName,
		PromptFile: opts.promptFile,
	})
	if err != nil {
		return err
	}

	defaultRecords := opts.records
	if defaultRecords <= 0 {
		defaultRecords = cfg.Generation.DefaultRecords
	}

	var genOpts []llm.GenerateOption
	if opts.temperature > 0 {
		genOpts = append(genOpts, llm.WithTemperature(opts.temperature))
	}

	printBanner(comps)

	if comps.S3 != nil {
		objects, err := comps.S3.ListDatasets(ctx, "datasets")
		if err != nil {
			utils.Warn("S3 listing failed", "error", err)
			fmt.Printf("☁️  S3: bucket %q (listing failed: %v)\n", comps.S3.Bucket(), err)
		} else {
			fmt.Printf("☁️  S3: bucket %q, %d dataset(s) uploaded earlier\n", comps.S3.Bucket(), len(objects))
		}
	}

	runLoop(ctx, comps, defaultRecords, genOpts)

	runs, totalRecords, saved := comps.Session.Stats()
	fmt.Println()
	fmt.Printf("Session summary: %d run(s), %d record(s), %d file(s) saved\n", runs, totalRecords, saved)
	utils.Info("Application exited", "runs", runs, "records", totalRecords, "saved", saved)
	return nil
}

func printBanner(comps *app.Components) {
	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║           🤖 Datagen — Synthetic Data Generator           ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("📋 Schema: %s (%d fields)\n", comps.SchemaFile, len(comps.Schema.PropertyNames()))
	fmt.Printf("🧠 Model:  %s (%s)\n", comps.ModelName, comps.ModelDef.ModelName)
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  any text     - describe the records you want")
	fmt.Println("  quit / exit  - leave")
}

// runLoop крутит основной цикл: описание → количество → генерация.
func runLoop(ctx context.Context, comps *app.Components, defaultRecords int, genOpts []llm.GenerateOption) {
	cons := console.New(os.Stdin, os.Stdout)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nInterrupted.")
			return
		default:
		}

		input, err := cons.ReadLine("\n💬 Describe the data (or 'quit'): ")
		if err != nil {
			if err != io.EOF {
				fmt.Printf("\nRead error: %v\n", err)
			}
			return
		}
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			return
		}

		count, err := cons.ReadInt(fmt.Sprintf("🔢 How many records? [%d]: ", defaultRecords), defaultRecords)
		if err != nil {
			return
		}

		generateOnce(ctx, comps, cons, input, count, genOpts)
	}
}

// generateOnce выполняет один запуск: генерация, превью, сохранение.
func generateOnce(ctx context.Context, comps *app.Components, cons *console.Console, userPrompt string, count int, genOpts []llm.GenerateOption) {
	cfg := comps.Config

	// Каждый запуск пишет собственный трейс
	var recorder *debug.Recorder
	if cfg.App.Debug {
		rec, err := debug.NewRecorder(debug.RecorderConfig{
			LogsDir:         cfg.App.LogsDir,
			IncludeMessages: true,
		})
		if err != nil {
			utils.Warn("Recorder unavailable", "error", err)
		} else {
			recorder = rec
		}
	}
	comps.Generator.SetRecorder(recorder)

	started := time.Now()
	fmt.Printf("\n⏳ Generating %d record(s) with %s...\n", count, comps.ModelName)

	result, err := comps.Generator.Generate(ctx, prompt.GenerationRequest{
		Prompt:  userPrompt,
		Records: count,
	}, genOpts...)
	if err != nil {
		fmt.Printf("❌ %s\n", openai.ClassifyError(err).HumanMessage())
		fmt.Printf("   %v\n", err)
		if raw, ok := records.RawResponse(err); ok {
			fmt.Println("   Raw model output:")
			fmt.Println(raw)
		}
		finalizeTrace(recorder, time.Since(started))
		return
	}

	fmt.Println("\n📋 Preview:")
	fmt.Println(result.Preview)
	fmt.Printf("\n✅ %d record(s) in %s\n", len(result.Records), result.Duration.Round(10*time.Millisecond))

	comps.Session.AddRun(session.Run{
		Prompt:    userPrompt,
		Requested: count,
		Records:   result.Records,
		Duration:  result.Duration,
	})

	saveIfConfirmed(ctx, comps, cons, result, recorder)
	finalizeTrace(recorder, time.Since(started))
}

// saveIfConfirmed спрашивает подтверждение и сохраняет CSV.
func saveIfConfirmed(ctx context.Context, comps *app.Components, cons *console.Console, result *generator.Result, recorder *debug.Recorder) {
	confirmed, err := cons.Confirm("💾 Save to file? (y/n): ")
	if err != nil || !confirmed {
		return
	}

	filename, err := cons.ReadLine(fmt.Sprintf("📄 Filename [%s]: ", output.DefaultFilename))
	if err != nil {
		return
	}

	path := output.ResolvePath(filename, comps.Config.App.OutputDir)
	if err := output.WriteCSV(path, comps.Schema.PropertyNames(), result.Records); err != nil {
		fmt.Printf("❌ Save failed: %v\n", err)
		utils.Error("CSV save failed", "path", path, "error", err)
		return
	}

	fmt.Printf("✅ Saved %d record(s) → %s\n", len(result.Records), path)
	utils.Info("CSV saved", "path", path, "records", len(result.Records))

	if err := comps.Session.MarkSaved(path); err != nil {
		utils.Warn("Session bookkeeping failed", "error", err)
	}
	if recorder != nil {
		recorder.RecordSaved(path, len(result.Records))
	}

	if comps.S3 != nil {
		objectName, err := comps.S3.UploadCSV(ctx, path)
		if err != nil {
			fmt.Printf("⚠️  S3 upload failed: %v\n", err)
			utils.Error("S3 upload failed", "path", path, "error", err)
			return
		}
		fmt.Printf("☁️  Uploaded → s3://%s/%s\n", comps.S3.Bucket(), objectName)
		utils.Info("Dataset uploaded", "bucket", comps.S3.Bucket(), "object", objectName)
	}
}

// finalizeTrace закрывает debug-трейс, если он был включён.
func finalizeTrace(recorder *debug.Recorder, duration time.Duration) {
	if recorder == nil {
		return
	}
	path, err := recorder.Finalize(duration)
	if err != nil {
		utils.Warn("Debug trace not written", "error", err)
		return
	}
	fmt.Printf("🔍 Debug trace: %s\n", path)
}
