package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"fts-hw/config"
	"fts-hw/internal/corpus"
	"fts-hw/internal/docmap"
	"fts-hw/internal/index/indexer"
	"fts-hw/internal/lib/logger/sl"
	"fts-hw/internal/retriever"
	"fts-hw/internal/storage/leveldb"
	utils "fts-hw/internal/utils"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// -q must be defined before config.MustLoad, which parses the
	// command line.
	var query string
	flag.StringVar(&query, "q", "", "search query; if empty, reads queries from stdin")

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log := setupLogger(cfg.Env)
	log.Info("fts", "env", cfg.Env)

	store, err := leveldb.NewStorage(log, cfg.StoragePath)
	if err != nil {
		log.Error("failed to open document store", sl.Err(err), "path", cfg.StoragePath)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close document store", sl.Err(err))
		}
	}()

	c, err := corpus.NewDirCorpus(log, cfg.Corpus.Dir, store)
	if err != nil {
		log.Error("failed to open corpus directory", sl.Err(err), "dir", cfg.Corpus.Dir)
		os.Exit(1)
	}

	ix := indexer.New(log)
	start := time.Now()
	if err := ix.Build(ctx, c, cfg.Index.TriePath, cfg.Index.StatsPath, cfg.Index.DocMapPath); err != nil {
		log.Error("index build failed", sl.Err(err))
		os.Exit(1)
	}
	// Flush any documents this run's build batched into the store before
	// answering queries, so a just-built result's preview is visible
	// immediately rather than racing the background writer.
	store.StopWorkers()
	log.Info("index ready", "elapsed", utils.FormatDuration(time.Since(start)))

	r, err := retriever.Load(cfg.Index.TriePath, cfg.Index.StatsPath)
	if err != nil {
		log.Error("failed to load index", sl.Err(err))
		os.Exit(1)
	}

	dm, err := loadDocMap(cfg.Index.DocMapPath)
	if err != nil {
		log.Warn("failed to load document id map, results will print bare ids", sl.Err(err))
		dm = docmap.Map{}
	}

	if query != "" {
		runQuery(ctx, r, dm, store, query)
		return
	}

	runREPL(ctx, r, dm, store)
}

func runQuery(ctx context.Context, r *retriever.Retriever, dm docmap.Map, store *leveldb.Storage, query string) {
	start := time.Now()
	results := r.Search(query)
	fmt.Printf("%d results in %s\n", len(results), utils.FormatDuration(time.Since(start)))
	printResults(ctx, results, dm, store)
}

func runREPL(ctx context.Context, r *retriever.Retriever, dm docmap.Map, store *leveldb.Storage) {
	fmt.Println("fts ready. Enter a Boolean query (AND, OR, parentheses), Ctrl-D or Ctrl-C to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			lines <- scanner.Text()
			fmt.Print("> ")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nshutting down")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			start := time.Now()
			results := r.Search(line)
			fmt.Printf("%d results in %s\n", len(results), utils.FormatDuration(time.Since(start)))
			printResults(ctx, results, dm, store)
		}
	}
}

// previewLen bounds how much of a stored document's text is printed
// alongside each result.
const previewLen = 80

func printResults(ctx context.Context, ids []int, dm docmap.Map, store *leveldb.Storage) {
	for _, id := range ids {
		path, havePath := dm[id]

		preview := ""
		if doc, err := store.GetDocument(ctx, id); err == nil {
			preview = doc.Text
			if len(preview) > previewLen {
				preview = preview[:previewLen] + "..."
			}
		}

		switch {
		case havePath && preview != "":
			fmt.Printf("  %d  %s  %s\n", id, path, preview)
		case havePath:
			fmt.Printf("  %d  %s\n", id, path)
		default:
			fmt.Printf("  %d\n", id)
		}
	}
}

func loadDocMap(path string) (docmap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return docmap.Deserialize(f)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
