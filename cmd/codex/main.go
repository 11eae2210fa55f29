// Copyright 2025 The Codex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/debugonezero/codex"
	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/ingestion"
	"github.com/debugonezero/codex/search"
)

func main() {
	app := &cli.App{
		Name:  "codex",
		Usage: "Semantic memory over agent session archives",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest all session files from the archive",
				Action: ingestCommand,
				Flags: append(connectionFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-ingest files even if their content is unchanged",
					},
					&cli.BoolFlag{
						Name:  "no-ledger",
						Usage: "Skip change tracking entirely",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report ingestion progress on stderr",
						Value: true,
					},
				),
			},
			{
				Name:   "watch",
				Usage:  "Watch the archive and ingest new session files as they appear",
				Action: watchCommand,
				Flags: append(connectionFlags(),
					&cli.DurationFlag{
						Name:  "settle-delay",
						Usage: "Wait this long after a file appears before ingesting it",
						Value: ingestion.DefaultSettleDelay,
					},
					&cli.BoolFlag{
						Name:  "no-ledger",
						Usage: "Skip change tracking entirely",
					},
				),
			},
			{
				Name:      "query",
				Usage:     "Search stored memories",
				ArgsUsage: "<query text>",
				Action:    queryCommand,
				Flags: append(connectionFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of memories to return",
						Value:   search.DefaultMaxHits,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "archive",
			Aliases: []string{"a"},
			Usage:   "Session archive directory",
			Value:   codex.DefaultArchiveRoot(),
			EnvVars: []string{"CODEX_ARCHIVE"},
		},
		&cli.StringFlag{
			Name:    "collection",
			Usage:   "Vector collection name",
			Value:   codex.DefaultCollection,
			EnvVars: []string{"CODEX_COLLECTION"},
		},
		&cli.StringFlag{
			Name:    "qdrant-host",
			Usage:   "Qdrant host",
			Value:   codex.DefaultQdrantHost,
			EnvVars: []string{"CODEX_QDRANT_HOST"},
		},
		&cli.IntFlag{
			Name:    "qdrant-port",
			Usage:   "Qdrant gRPC port",
			Value:   codex.DefaultQdrantPort,
			EnvVars: []string{"CODEX_QDRANT_PORT"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"CODEX_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "all-minilm",
			EnvVars: []string{"CODEX_EMBEDDING_MODEL"},
		},
		&cli.IntFlag{
			Name:    "vector-size",
			Usage:   "Embedding dimension (must match the model)",
			Value:   384,
			EnvVars: []string{"CODEX_VECTOR_SIZE"},
		},
	}
}

func openCodex(c *cli.Context, extra ...codex.CodexOption) (*codex.Codex, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithVectorSize(c.Int("vector-size")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []codex.CodexOption{
		codex.WithAIConfig(aiConfig),
		codex.WithCollection(c.String("collection")),
		codex.WithQdrant(c.String("qdrant-host"), c.Int("qdrant-port")),
	}
	opts = append(opts, extra...)

	return codex.New(c.String("archive"), opts...)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	var codexOpts []codex.CodexOption
	if c.Bool("no-ledger") {
		codexOpts = append(codexOpts, codex.WithoutLedger())
	}

	cdx, err := openCodex(c, codexOpts...)
	if err != nil {
		return err
	}
	defer cdx.Close()

	pipelineOpts := []ingestion.Option{
		ingestion.WithForce(c.Bool("force")),
	}
	if c.Bool("progress") {
		pipelineOpts = append(pipelineOpts,
			ingestion.WithProgress(ingestion.NewProgressTracker(os.Stderr, 1)))
	}

	pipeline, err := cdx.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}

	archive := c.String("archive")
	fmt.Fprintf(os.Stderr, "Archive: %s\n", archive)
	fmt.Fprintf(os.Stderr, "Collection: %s\n", c.String("collection"))
	fmt.Fprintln(os.Stderr)

	start := time.Now()
	summary, err := pipeline.Run(ctx, archive)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed %d files (%d skipped), added %d points in %s\n",
		summary.FilesProcessed, summary.FilesSkipped, summary.PointsAdded,
		time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Collection now holds %d points\n", summary.StoreCount)

	return nil
}

func watchCommand(c *cli.Context) error {
	var codexOpts []codex.CodexOption
	if c.Bool("no-ledger") {
		codexOpts = append(codexOpts, codex.WithoutLedger())
	}

	cdx, err := openCodex(c, codexOpts...)
	if err != nil {
		return err
	}
	defer cdx.Close()

	archive := c.String("archive")
	watcher, err := cdx.NewWatcher(archive, nil,
		ingestion.WithSettleDelay(c.Duration("settle-delay")))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s for new session files (Ctrl-C to stop)\n", archive)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(os.Stderr, "Shutting down")
	watcher.Stop()

	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query text is required")
	}

	cdx, err := openCodex(c, codex.WithoutLedger())
	if err != nil {
		return err
	}
	defer cdx.Close()

	searcher, err := cdx.NewSearcher(search.WithMaxHits(c.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	fmt.Println(searcher.AnswerQuery(ctx, query))

	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
