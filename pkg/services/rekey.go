package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-rekey/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-rekey/pkg/changelog"
	"github.com/ekaya-inc/ekaya-rekey/pkg/corpus"
	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
	"github.com/ekaya-inc/ekaya-rekey/pkg/identifiers"
	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
	"github.com/ekaya-inc/ekaya-rekey/pkg/relocate"
	"github.com/ekaya-inc/ekaya-rekey/pkg/rewrite"
)

// RekeyOptions describes one rekey run.
type RekeyOptions struct {
	InputRoot  string
	OutputRoot string
	// DatabasesPath is the directory whose subdirectories get renamed.
	DatabasesPath string
	// LogPath is the change log file, normally inside OutputRoot.
	LogPath    string
	Extensions []string
	Renames    models.RenamePair

	// Rand drives identifier permutation. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// RekeyService copies a document tree and rewrites the copy.
type RekeyService interface {
	// Run copies the input tree to the output root, builds the identifier map
	// over the whole copy, rewrites and relocates every document, then renames
	// directories under the databases subtree.
	// Malformed documents are skipped; I/O errors abort the run.
	Run(ctx context.Context) (*models.RunSummary, error)
}

type rekeyService struct {
	opts   RekeyOptions
	logger *zap.Logger
}

// NewRekeyService creates a new RekeyService.
func NewRekeyService(opts RekeyOptions, logger *zap.Logger) RekeyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = document.DefaultExtensions
	}
	return &rekeyService{
		opts:   opts,
		logger: logger,
	}
}

var _ RekeyService = (*rekeyService)(nil)

func (s *rekeyService) Run(ctx context.Context) (*models.RunSummary, error) {
	runID := uuid.New()
	logger := s.logger.With(zap.String("run_id", runID.String()))

	out := s.opts.OutputRoot
	log := changelog.New(s.opts.LogPath)
	summary := &models.RunSummary{
		RunID:      runID,
		OutputRoot: out,
		LogPath:    log.Path(),
	}

	logger.Info("Copying input tree",
		zap.String("from", s.opts.InputRoot),
		zap.String("to", out))
	if err := corpus.CopyTree(s.opts.InputRoot, out); err != nil {
		return nil, fmt.Errorf("failed to copy input tree: %w", err)
	}

	if err := log.Reset(); err != nil {
		return nil, err
	}

	// Phase 1: the identifier map covers the whole copy before anything is rewritten.
	ids, err := identifiers.NewBuilder(s.opts.Extensions, s.opts.Rand, logger).Build(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("failed to build identifier map: %w", err)
	}

	// Phase 2: ids is read-only from here on.
	rewriter := rewrite.New(ids, s.opts.Renames, log, logger)
	relocator := relocate.New(out, s.opts.Renames, log, logger)

	paths, err := corpus.ListDocuments(out, s.opts.Extensions)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.processFile(path, rewriter, relocator, summary, logger); err != nil {
			return summary, err
		}
	}

	renamed, err := relocator.RenameDirectories(s.opts.DatabasesPath)
	summary.DirectoriesRenamed = renamed
	if err != nil {
		return summary, err
	}

	logger.Info("Rekey complete",
		zap.Int("files_processed", summary.FilesProcessed),
		zap.Int("files_skipped", summary.FilesSkipped),
		zap.Int("changes_logged", summary.ChangesLogged),
		zap.Int("files_relocated", summary.FilesRelocated),
		zap.Int("directories_renamed", summary.DirectoriesRenamed))
	return summary, nil
}

// processFile rewrites, saves and relocates one document.
// A malformed document is logged and counted as skipped.
func (s *rekeyService) processFile(
	path string,
	rewriter *rewrite.Rewriter,
	relocator *relocate.Relocator,
	summary *models.RunSummary,
	logger *zap.Logger,
) error {
	logger.Info("Processing file", zap.String("path", path))

	doc, err := document.Load(path)
	if err != nil {
		if errors.Is(err, apperrors.ErrParse) {
			logger.Warn("Error processing file",
				zap.String("path", path),
				zap.Error(err))
			summary.FilesSkipped++
			return nil
		}
		return err
	}
	if document.IsEmpty(doc) {
		logger.Debug("Empty document left unchanged", zap.String("path", path))
		summary.FilesProcessed++
		return nil
	}

	n, err := rewriter.Rewrite(doc, path)
	summary.ChangesLogged += n
	if err != nil {
		return err
	}

	if err := document.Save(path, doc); err != nil {
		return err
	}
	summary.FilesProcessed++

	_, moved, err := relocator.RelocateFile(path, doc)
	if err != nil {
		return err
	}
	if moved {
		summary.FilesRelocated++
		summary.ChangesLogged++
	}
	return nil
}
