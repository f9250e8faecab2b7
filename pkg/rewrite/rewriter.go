// Package rewrite applies the identifier map and the database/schema rename to
// the string values of a document.
package rewrite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/ekaya-rekey/pkg/changelog"
	"github.com/ekaya-inc/ekaya-rekey/pkg/document"
	"github.com/ekaya-inc/ekaya-rekey/pkg/identifiers"
	"github.com/ekaya-inc/ekaya-rekey/pkg/logging"
	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

// Rewriter rewrites documents in place and records every substitution.
//
// Mapping values receive identifier substitution followed by the
// database/schema rename. Sequence elements receive only the rename;
// identifiers inside lists are left as they are.
type Rewriter struct {
	ids     *identifiers.Map
	renames models.RenamePair
	log     changelog.Recorder
	logger  *zap.Logger
}

// New creates a Rewriter. ids must be fully built before the first Rewrite.
func New(ids *identifiers.Map, renames models.RenamePair, log changelog.Recorder, logger *zap.Logger) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{
		ids:     ids,
		renames: renames,
		log:     log,
		logger:  logger,
	}
}

// Rewrite mutates doc and returns the number of changes recorded for path.
func (r *Rewriter) Rewrite(doc *yaml.Node, path string) (int, error) {
	changes := 0
	record := func(original, updated string) error {
		changes++
		r.logger.Debug("Replaced value",
			zap.String("path", path),
			zap.String("from", logging.TruncateString(original, logging.MaxValueLogLength)),
			zap.String("to", logging.TruncateString(updated, logging.MaxValueLogLength)))
		return r.log.Record(models.Change{Path: path, Original: original, Updated: updated})
	}

	err := document.Walk(doc, func(e *document.Entry) (document.Step, error) {
		if !document.IsString(e.Value) {
			return document.Descend, nil
		}

		switch e.Container {
		case document.MappingValue:
			return document.Descend, r.rewriteMappingValue(e.Value, record)
		case document.SequenceElement:
			return document.Descend, r.rewriteName(e.Value, record)
		}
		return document.Descend, nil
	})
	if err != nil {
		return changes, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return changes, nil
}

// rewriteMappingValue applies every identifier whose old form occurs in the
// value, in map order, each step seeing the result of the previous one.
// Every identifier hit is recorded, even when the permutation left it unchanged.
func (r *Rewriter) rewriteMappingValue(n *yaml.Node, record func(string, string) error) error {
	var err error
	r.ids.Each(func(oldID, newID string) {
		if err != nil || !strings.Contains(n.Value, oldID) {
			return
		}
		original := n.Value
		n.Value = strings.ReplaceAll(original, oldID, newID)
		err = record(original, n.Value)
	})
	if err != nil {
		return err
	}
	return r.rewriteName(n, record)
}

// rewriteName applies the database/schema rename and records it only if the
// value changed.
func (r *Rewriter) rewriteName(n *yaml.Node, record func(string, string) error) error {
	if !r.renames.Matches(n.Value) {
		return nil
	}
	original := n.Value
	updated := r.renames.Apply(original)
	if updated == original {
		return nil
	}
	n.Value = updated
	return record(original, updated)
}
