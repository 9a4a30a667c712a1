package crossref

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/normalize"
	"github.com/LucasDotTrade/lucas-brain/internal/semantic"
)

// goodsComparedTypes maps each compared document to its examination
// standard: the invoice must mirror the credit's description (UCP Art.
// 18(c)); transport and packing documents may use general terms (Art. 19).
var goodsComparedTypes = []struct {
	docType    model.DocumentType
	strictness semantic.Strictness
	severity   model.Severity
}{
	{model.DocCommercialInvoice, semantic.Strict, model.SeverityCritical},
	{model.DocBillOfLading, semantic.Lenient, model.SeverityMajor},
	{model.DocPackingList, semantic.Lenient, model.SeverityMajor},
}

// goodsDescriptionRule builds the one rule that consults the semantic
// comparator. Comparisons fan out per document pair, bounded by
// compareLimit; a comparator failure is a forced mismatch (fail-closed) at
// the document-type-appropriate severity.
func goodsDescriptionRule(comparator semantic.Comparator, compareLimit int) Rule {
	return Rule{
		Name:   "goodsDescription",
		LCOnly: true,
		Check: func(ctx context.Context, in Input) []model.CrossRefIssue {
			lc := docByType(in.Docs, model.DocLetterOfCredit)
			if lc == nil || comparator == nil {
				return nil
			}
			creditDesc := model.Str(lc.ExtractedData.GoodsDescription)
			if !normalize.IsSpecified(creditDesc) {
				return nil
			}

			var mu sync.Mutex
			var issues []model.CrossRefIssue

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(compareLimit)
			for _, cmp := range goodsComparedTypes {
				doc := docByType(in.Docs, cmp.docType)
				if doc == nil {
					continue
				}
				docDesc := model.Str(doc.ExtractedData.GoodsDescription)
				if !normalize.IsSpecified(docDesc) {
					continue
				}
				g.Go(func() error {
					req := semantic.CompareRequest{
						CreditDescription:   creditDesc,
						DocumentDescription: docDesc,
						DocumentType:        cmp.docType,
						Strictness:          cmp.strictness,
					}
					result, err := comparator.Compare(gctx, req)
					if err != nil {
						zap.L().Warn("goods comparison failed closed",
							zap.String("document_type", string(cmp.docType)),
							zap.Error(err),
						)
						result = semantic.FailClosed(req)
					}
					if result.Matches {
						return nil
					}
					mu.Lock()
					issues = append(issues, model.CrossRefIssue{
						Field:     "goodsDescription",
						Documents: []string{model.DocLetterOfCredit.Display(), cmp.docType.Display()},
						Values:    []string{creditDesc, docDesc},
						Severity:  cmp.severity,
						Description: fmt.Sprintf("goods description on %s does not conform to the credit: %s",
							cmp.docType.Display(), result.Reason),
					})
					mu.Unlock()
					return nil
				})
			}
			_ = g.Wait()
			return issues
		},
	}
}
