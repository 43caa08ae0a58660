// Command roster-import runs one bulk enrollment import from a roster CSV file.
// It parses and validates the file row by row, writes the accepted enrollments,
// and records the batch with its per-row errors in PostgreSQL.
//
// Flags:
//
//	--course  target course UUID (required)
//	--file    path to the roster CSV file (required)
//	--actor   UUID of the user running the import (required)
//	--config  path to config YAML (optional; falls back to env)
//
// Exit codes: 0 = success, 1 = error. A batch with rejected rows still
// exits 0; the rejections are part of the summary, not a failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/classworks/lms-backend/internal/adapter/postgres"
	"github.com/classworks/lms-backend/internal/adapter/postgres/course"
	"github.com/classworks/lms-backend/internal/adapter/postgres/enrollment"
	"github.com/classworks/lms-backend/internal/adapter/postgres/importbatch"
	"github.com/classworks/lms-backend/internal/adapter/postgres/rowerror"
	"github.com/classworks/lms-backend/internal/app"
	"github.com/classworks/lms-backend/internal/config"
	"github.com/classworks/lms-backend/internal/service/roster"
	"github.com/classworks/lms-backend/pkg/ctxutil"
)

func main() {
	courseFlag := flag.String("course", "", "target course UUID")
	fileFlag := flag.String("file", "", "path to the roster CSV file")
	actorFlag := flag.String("actor", "", "UUID of the user running the import")
	configFlag := flag.String("config", "", "path to config YAML")
	flag.Parse()

	if *courseFlag == "" || *fileFlag == "" || *actorFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	courseID, err := uuid.Parse(*courseFlag)
	if err != nil {
		log.Fatalf("invalid --course: %v", err)
	}
	actorID, err := uuid.Parse(*actorFlag)
	if err != nil {
		log.Fatalf("invalid --actor: %v", err)
	}

	if *configFlag != "" {
		os.Setenv("CONFIG_PATH", *configFlag)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("roster-import starting", slog.String("version", app.BuildVersion()))

	data, err := os.ReadFile(*fileFlag)
	if err != nil {
		logger.Error("read roster file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithActorID(ctx, actorID)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := roster.New(
		logger,
		course.New(pool),
		enrollment.New(pool),
		importbatch.New(pool),
		rowerror.New(pool),
		postgres.NewTxManager(pool),
		cfg.Import,
	)

	result, err := svc.ImportRoster(ctx, roster.ImportInput{
		CourseID: courseID,
		FileName: *fileFlag,
		Data:     data,
	})
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("batch %s: total=%d successful=%d failed=%d duplicates=%d\n",
		result.BatchID, result.Total, result.Successful, result.Failed, result.Duplicates)
	for _, issue := range result.Issues {
		fmt.Printf("  row %d [%s]: %s\n", issue.Row, issue.Kind, issue.Error)
	}
}
