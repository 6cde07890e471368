package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skip2/go-qrcode"

	"shortlink/pkg/adapters/persistence"
	"shortlink/pkg/adapters/storage/sqlite"
	"shortlink/pkg/config"
	"shortlink/pkg/core/domain"
	"shortlink/pkg/core/services"
	"shortlink/pkg/shortcode"
	"shortlink/pkg/store"
)

const usage = `expected one of: create, resolve, clicks, list, delete, sweep, run, qr, export, import`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	kv, err := sqlite.NewKVStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open durable store: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()

	persister := persistence.NewAdapter(kv, logger)
	st := store.NewEntryStore()
	entries, _ := persister.Load(ctx)
	st.Reset(entries)

	engine := services.NewEngine(st, persister, shortcode.NewGenerator(0), domain.RealClock{}, logger, cfg.DefaultValidity)

	switch os.Args[1] {
	case "create":
		doCreate(ctx, engine, os.Args[2:])
	case "resolve":
		doResolve(ctx, engine, os.Args[2:])
	case "clicks":
		doClicks(ctx, engine, os.Args[2:])
	case "list":
		doList(engine)
	case "delete":
		doDelete(ctx, engine, os.Args[2:])
	case "sweep":
		fmt.Printf("removed %d expired links\n", engine.Sweep(ctx))
	case "run":
		doRun(ctx, engine, cfg.SweepInterval)
	case "qr":
		doQR(ctx, engine, cfg.BaseURL, os.Args[2:])
	case "export":
		doExport(engine)
	case "import":
		doImport(ctx, engine, os.Args[2:])
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func doCreate(ctx context.Context, engine *services.Engine, args []string) {
	cmd := flag.NewFlagSet("create", flag.ExitOnError)
	longURL := cmd.String("url", "", "destination URL (required)")
	code := cmd.String("code", "", "custom short code (optional)")
	minutes := cmd.Int("minutes", 0, "validity in minutes (default 30)")
	cmd.Parse(args)

	if *longURL == "" {
		cmd.PrintDefaults()
		os.Exit(1)
	}

	entry, err := engine.Create(ctx, *longURL, *code, time.Duration(*minutes)*time.Minute)
	if err != nil {
		log.Fatalf("Create failed: %v", err)
	}
	printJSON(entry)
}

func doResolve(ctx context.Context, engine *services.Engine, args []string) {
	cmd := flag.NewFlagSet("resolve", flag.ExitOnError)
	code := cmd.String("code", "", "short code (required)")
	cmd.Parse(args)

	entry, err := engine.Resolve(ctx, *code)
	if err != nil {
		log.Fatalf("Resolve failed: %v", err)
	}
	fmt.Println(entry.LongURL)
}

func doClicks(ctx context.Context, engine *services.Engine, args []string) {
	cmd := flag.NewFlagSet("clicks", flag.ExitOnError)
	code := cmd.String("code", "", "short code (required)")
	cmd.Parse(args)

	if !engine.IncrementClicks(ctx, *code) {
		log.Fatalf("Link unavailable: %s", *code)
	}
}

func doList(engine *services.Engine) {
	printJSON(engine.List())
}

func doDelete(ctx context.Context, engine *services.Engine, args []string) {
	cmd := flag.NewFlagSet("delete", flag.ExitOnError)
	id := cmd.String("id", "", "entry id (required)")
	cmd.Parse(args)

	if !engine.Delete(ctx, *id) {
		log.Fatalf("No entry with id %s", *id)
	}
}

// doRun drives the periodic expiry sweep until interrupted.
func doRun(ctx context.Context, engine *services.Engine, interval time.Duration) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Sweeping every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			engine.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func doQR(ctx context.Context, engine *services.Engine, baseURL string, args []string) {
	cmd := flag.NewFlagSet("qr", flag.ExitOnError)
	code := cmd.String("code", "", "short code (required)")
	out := cmd.String("out", "qrcode.png", "output PNG file")
	cmd.Parse(args)

	entry, err := engine.Resolve(ctx, *code)
	if err != nil {
		log.Fatalf("Resolve failed: %v", err)
	}

	shortURL := baseURL + "/" + entry.ShortCode
	if err := qrcode.WriteFile(shortURL, qrcode.Medium, 256, *out); err != nil {
		log.Fatalf("QR generation failed: %v", err)
	}
	fmt.Printf("wrote %s for %s\n", *out, shortURL)
}

func doExport(engine *services.Engine) {
	printJSON(engine.List())
}

func doImport(ctx context.Context, engine *services.Engine, args []string) {
	cmd := flag.NewFlagSet("import", flag.ExitOnError)
	file := cmd.String("file", "", "JSON file to import")
	cmd.Parse(args)

	if *file == "" {
		cmd.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to parse file: %v", err)
	}

	imported := 0
	for _, e := range entries {
		validity := e.ExpiresAt.Sub(e.CreatedAt)
		if _, err := engine.Create(ctx, e.LongURL, e.ShortCode, validity); err != nil {
			log.Printf("Skipping %s: %v", e.ShortCode, err)
			continue
		}
		imported++
	}
	fmt.Printf("imported %d of %d links\n", imported, len(entries))
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}
