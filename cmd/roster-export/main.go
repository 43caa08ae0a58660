// Command roster-export writes CSV exports of the enrollment data.
// With --course it exports a course's current enrollment list; with --batch
// it exports a batch's row errors in a correctable, resubmittable shape.
//
// Flags:
//
//	--course  course UUID to export enrollments for
//	--batch   import batch UUID to export row errors for
//	--out     output file path (default: stdout)
//	--config  path to config YAML (optional; falls back to env)
//
// Exactly one of --course and --batch must be given.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"io"
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
)

func main() {
	courseFlag := flag.String("course", "", "course UUID to export enrollments for")
	batchFlag := flag.String("batch", "", "import batch UUID to export row errors for")
	outFlag := flag.String("out", "", "output file path (default: stdout)")
	configFlag := flag.String("config", "", "path to config YAML")
	flag.Parse()

	if (*courseFlag == "") == (*batchFlag == "") {
		log.Fatal("exactly one of --course and --batch is required")
	}

	if *configFlag != "" {
		os.Setenv("CONFIG_PATH", *configFlag)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

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

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			logger.Error("create output file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch {
	case *courseFlag != "":
		courseID, err := uuid.Parse(*courseFlag)
		if err != nil {
			log.Fatalf("invalid --course: %v", err)
		}
		if err := svc.ExportEnrollments(ctx, courseID, out); err != nil {
			logger.Error("export enrollments", slog.String("error", err.Error()))
			os.Exit(1)
		}

	case *batchFlag != "":
		batchID, err := uuid.Parse(*batchFlag)
		if err != nil {
			log.Fatalf("invalid --batch: %v", err)
		}
		if err := svc.ExportErrors(ctx, batchID, out); err != nil {
			logger.Error("export row errors", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
