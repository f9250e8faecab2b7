package identifiers

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-rekey/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-rekey/pkg/corpus"
	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
)

// Builder scans a corpus and produces its identifier Map.
type Builder struct {
	extensions []string
	rng        *rand.Rand
	logger     *zap.Logger
}

// NewBuilder creates a Builder. A nil rng uses a time-seeded source.
func NewBuilder(extensions []string, rng *rand.Rand, logger *zap.Logger) *Builder {
	if len(extensions) == 0 {
		extensions = document.DefaultExtensions
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		extensions: extensions,
		rng:        rng,
		logger:     logger,
	}
}

// Build collects identifiers from every document under root and assigns
// replacements once all documents have been scanned.
// Documents that fail to parse are logged and contribute nothing.
func (b *Builder) Build(ctx context.Context, root string) (*Map, error) {
	paths, err := corpus.ListDocuments(root, b.extensions)
	if err != nil {
		return nil, err
	}

	collector := NewCollector()
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := document.Load(path)
		if err != nil {
			if errors.Is(err, apperrors.ErrParse) {
				b.logger.Warn("Error reading file",
					zap.String("path", path),
					zap.Error(err))
				continue
			}
			return nil, err
		}

		if err := collector.Collect(doc); err != nil {
			return nil, fmt.Errorf("failed to collect identifiers from %s: %w", path, err)
		}
	}

	m := collector.Assign(b.rng)
	b.logger.Info("Built identifier map",
		zap.Int("documents", len(paths)),
		zap.Int("identifiers", m.Len()))
	return m, nil
}
