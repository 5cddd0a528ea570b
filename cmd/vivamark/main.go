package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/vivamark/internal/api"
	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/config"
	"github.com/dgallion1/vivamark/internal/extract"
	"github.com/dgallion1/vivamark/internal/geometry"
	"github.com/dgallion1/vivamark/internal/group"
	"github.com/dgallion1/vivamark/internal/pdfdoc"
	"github.com/dgallion1/vivamark/internal/report"
	"github.com/dgallion1/vivamark/internal/store"
)

func main() {
	var (
		pdfPath    = flag.String("pdf", "", "path to the annotated thesis PDF (required)")
		outputDir  = flag.String("output_dir", "", "directory for the generated reports (required)")
		debug      = flag.Bool("debug", false, "enable debug logging")
		configPath = flag.String("config", "", "optional YAML config file")
		dbPath     = flag.String("db", "", "archive the run in a sqlite database at this path")
		docxPath   = flag.String("docx", "", "also write the student corrections as a .docx file")
		serveAddr  = flag.String("serve", "", "serve the reports over HTTP at this address after extraction")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *pdfPath, *outputDir, *configPath, *dbPath, *docxPath, *serveAddr); err != nil {
		log.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, pdfPath, outputDir, configPath, dbPath, docxPath, serveAddr string) error {
	if pdfPath == "" {
		return errors.New("missing required -pdf flag")
	}
	if outputDir == "" {
		return errors.New("missing required -output_dir flag")
	}

	cfg := config.Load()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if serveAddr != "" {
		cfg.ServeAddr = serveAddr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	src, err := pdfdoc.Open(pdfPath, pdfdoc.Limits{
		MaxSizeMB: cfg.MaxPDFSizeMB,
		MaxPages:  cfg.MaxPageCount,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	log.Info("opened document", "path", pdfPath, "pages", src.PageCount())

	est := geometry.LineEstimator{TopMargin: cfg.TopMargin, LineHeight: cfg.LineHeight}
	ex := extract.New(src, est, log)
	comments := ex.Run()
	stats := ex.Stats().Snapshot()

	log.Info("extraction complete",
		"pages", stats.Pages,
		"annotations", stats.Annotations,
		"comments", len(comments),
		"skipped", stats.TotalSkipped(),
	)
	for _, reason := range stats.SkipReasons() {
		log.Debug("skipped annotations", "reason", reason, "count", stats.Skipped[reason])
	}

	grouping := group.NewGrouping(src.TOC())
	groups := group.Partition(comments, grouping)
	if grouping.ByChapter() {
		log.Info("grouping by chapter", "chapters", len(groups))
	} else {
		log.Info("grouping by page", "pages", len(groups))
	}

	all := report.RenderAll(groups)
	student := report.RenderStudent(groups, grouping.ByChapter())
	examiner := report.RenderExaminer(groups)

	if err := report.WriteReports(outputDir, all, student, examiner); err != nil {
		return err
	}
	log.Info("reports written",
		"dir", outputDir,
		"files", []string{report.AllFile, report.StudentFile, report.ExaminerFile},
	)

	if docxPath != "" {
		if err := report.WriteStudentDocx(docxPath, groups); err != nil {
			return err
		}
		log.Info("docx written", "path", docxPath)
	}

	if cfg.DBPath != "" {
		if err := archiveRun(log, cfg.DBPath, pdfPath, stats, comments); err != nil {
			return err
		}
	}

	if cfg.ServeAddr != "" {
		return serve(log, cfg.ServeAddr, outputDir, stats)
	}
	return nil
}

func archiveRun(log *slog.Logger, dbPath, pdfPath string, stats extract.StatsSnapshot, comments []comment.Comment) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveRun(context.Background(), filepath.Base(pdfPath), stats, comments)
	if err != nil {
		return err
	}
	log.Info("run archived", "db", dbPath, "run_id", id)
	return nil
}

func serve(log *slog.Logger, addr, dir string, stats extract.StatsSnapshot) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(dir, stats, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving reports", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
