// Package pipeline orchestrates package validation: per-document extraction,
// deterministic assembly, cross-reference checks, and the verdict rollup.
// The pipeline always produces a verdict; collaborator failures degrade
// individual documents to WAIT, they never abort the package.
package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LucasDotTrade/lucas-brain/internal/assemble"
	"github.com/LucasDotTrade/lucas-brain/internal/crossref"
	"github.com/LucasDotTrade/lucas-brain/internal/extract"
	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/store"
	"github.com/LucasDotTrade/lucas-brain/internal/verdict"
)

// Pipeline validates document packages end to end.
type Pipeline struct {
	store       store.Store // nil disables persistence
	extractor   extract.Extractor
	engine      *crossref.Engine
	concurrency int
}

// New creates a Pipeline. The store may be nil for one-shot runs without
// persistence.
func New(st store.Store, extractor extract.Extractor, engine *crossref.Engine, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Pipeline{
		store:       st,
		extractor:   extractor,
		engine:      engine,
		concurrency: concurrency,
	}
}

// Run validates one package and returns its verdict. An error is returned
// only for unusable input; once extraction starts, every failure mode still
// ends in a verdict.
func (p *Pipeline) Run(ctx context.Context, input model.PackageInput) (*model.PackageVerdict, error) {
	if len(input.Documents) == 0 {
		return nil, eris.New("pipeline: package contains no documents")
	}
	for _, doc := range input.Documents {
		if !doc.Type.Valid() {
			return nil, eris.Errorf("pipeline: unknown document type %q", doc.Type)
		}
	}

	packageID := uuid.New().String()
	log := zap.L().With(
		zap.String("package_id", packageID),
		zap.String("client", input.ClientIdentifier),
		zap.Int("documents", len(input.Documents)),
	)
	log.Info("pipeline: validation started")

	// Per-document extraction fans out; results land at fixed indexes so
	// document order is preserved without locking.
	docs := make([]model.DocumentResult, len(input.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, doc := range input.Documents {
		g.Go(func() error {
			extraction, err := p.extractor.Extract(gctx, doc.Type, doc.Text)
			if err != nil {
				log.Warn("pipeline: extraction degraded to manual review",
					zap.String("document_type", string(doc.Type)),
					zap.Error(err),
				)
				extraction = nil
			}
			docs[i] = assemble.Assemble(doc.Type, doc.Text, extraction)
			return nil
		})
	}
	_ = g.Wait()

	issues, mode := p.engine.Run(ctx, docs)
	overall, recommendation := verdict.Aggregate(docs, issues)

	result := &model.PackageVerdict{
		PackageID:            packageID,
		ClientIdentifier:     input.ClientIdentifier,
		OverallVerdict:       overall,
		DocumentResults:      docs,
		CrossReferenceIssues: issues,
		Recommendation:       recommendation,
		PaymentMode:          mode,
	}

	// Persistence is best effort; a storage outage must not block the verdict.
	if p.store != nil {
		if err := p.store.SavePackage(ctx, *result); err != nil {
			log.Warn("pipeline: failed to persist verdict", zap.Error(err))
		}
	}

	log.Info("pipeline: validation complete",
		zap.String("verdict", string(overall)),
		zap.String("payment_mode", string(mode)),
		zap.Int("cross_reference_issues", len(issues)),
	)
	return result, nil
}
