// Package crossref implements the cross-document validation rules and the
// engine that runs them. Every rule is a pure function over the immutable
// document list; rules are independent and run concurrently. A rule only
// fires when at least two documents supply a value for the compared field;
// absence is "no opinion", never a mismatch.
package crossref

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/semantic"
)

// Input is the read-only material a rule evaluates.
type Input struct {
	Docs []model.DocumentResult
	Mode model.PaymentMode
	Now  time.Time
}

// CheckFunc evaluates one rule. Most rules return zero or one issue; the
// goods-description rule may return one per compared document.
type CheckFunc func(ctx context.Context, in Input) []model.CrossRefIssue

// Rule is one named cross-reference check.
type Rule struct {
	Name     string
	LCOnly   bool // evaluated only for LC-backed presentations
	NoLCOnly bool // evaluated only for customs-only shipments
	Check    CheckFunc
}

// Engine runs the active rule set over an assembled document list.
type Engine struct {
	rules []Rule
	now   func() time.Time
}

// New creates an engine with the full rule set. The comparator backs the
// goods-description rule; compareLimit bounds its per-pair fan-out.
func New(comparator semantic.Comparator, compareLimit int) *Engine {
	if compareLimit <= 0 {
		compareLimit = 4
	}
	rules := allRules()
	rules = append(rules, goodsDescriptionRule(comparator, compareLimit))
	return &Engine{rules: rules, now: time.Now}
}

// WithNow sets a fixed clock for testing.
func (e *Engine) WithNow(t time.Time) *Engine {
	e.now = func() time.Time { return t }
	return e
}

// Run evaluates every rule active for the package's payment mode. Rules run
// concurrently against the shared read-only document list; the result is
// sorted by (field, description) so callers see a deterministic order
// regardless of comparator completion order.
func (e *Engine) Run(ctx context.Context, docs []model.DocumentResult) ([]model.CrossRefIssue, model.PaymentMode) {
	mode := Mode(docs)
	in := Input{Docs: docs, Mode: mode, Now: e.now()}

	active := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if r.LCOnly && mode != model.PaymentModeLC {
			continue
		}
		if r.NoLCOnly && mode != model.PaymentModeNoLC {
			continue
		}
		active = append(active, r)
	}

	results := make([][]model.CrossRefIssue, len(active))
	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range active {
		g.Go(func() error {
			results[i] = rule.Check(gctx, in)
			return nil
		})
	}
	// Rules never return errors; failures degrade to issues or silence.
	_ = g.Wait()

	var issues []model.CrossRefIssue
	for _, rs := range results {
		issues = append(issues, rs...)
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Description < issues[j].Description
	})

	zap.L().Info("cross-reference complete",
		zap.String("payment_mode", string(mode)),
		zap.Int("rules_evaluated", len(active)),
		zap.Int("issues", len(issues)),
	)

	return issues, mode
}

// allRules assembles every deterministic rule. The goods-description rule is
// appended separately because it carries a collaborator handle.
func allRules() []Rule {
	return []Rule{
		{Name: "amountVsLC", LCOnly: true, Check: checkAmountVsLC},
		{Name: "portOfLoading", Check: checkPortOfLoading},
		{Name: "portOfDischarge", Check: checkPortOfDischarge},
		{Name: "beneficiaryName", Check: checkBeneficiary},
		{Name: "lcNumber", Check: checkLCNumber},
		{Name: "lcExpiryPast", LCOnly: true, Check: checkLCExpiryPast},
		{Name: "shipmentAfterExpiry", LCOnly: true, Check: checkShipmentAfterExpiry},
		{Name: "shipmentAfterLatest", LCOnly: true, Check: checkShipmentAfterLatest},
		{Name: "quantityTolerance", Check: checkQuantityTolerance},
		{Name: "inspectionCompany", LCOnly: true, Check: checkInspectionCompany},
		{Name: "consigneeOrderParty", LCOnly: true, Check: checkConsigneeOrderParty},
		{Name: "vesselName", Check: checkVesselName},
		{Name: "insuranceCoverage", LCOnly: true, Check: checkInsuranceCoverage},
		{Name: "shippedOnBoard", Check: checkShippedOnBoard},
		{Name: "freightNotation", LCOnly: true, Check: checkFreightNotation},
		{Name: "carrierSignature", Check: checkCarrierSignature},
		{Name: "carrierName", Check: checkCarrierName},
		{Name: "documentDating", Check: checkDocumentDating},
		{Name: "packingListMath", Check: checkPackingListMath},
		{Name: "ullageMath", Check: checkUllageMath},
		{Name: "invoiceMath", Check: checkInvoiceMath},
		{Name: "loiVessel", Check: checkLOIVessel},
		{Name: "loiBLNumber", Check: checkLOIBLNumber},
		{Name: "weightOutTurn", Check: checkWeightOutTurn},
		{Name: "exportLicenseExporter", LCOnly: true, Check: checkExportLicenseExporter},
		{Name: "exportLicenseExpiry", Check: checkExportLicenseExpiry},
		{Name: "ownershipBuyer", LCOnly: true, Check: checkOwnershipBuyer},
		{Name: "ownershipVessel", Check: checkOwnershipVessel},
		{Name: "tankCleanlinessVessel", Check: checkTankCleanlinessVessel},
		{Name: "tankCleanlinessDate", Check: checkTankCleanlinessDate},
		{Name: "customsInvoiceRequired", NoLCOnly: true, Check: requiredDocRule(model.DocCommercialInvoice, model.SeverityCritical)},
		{Name: "customsBLRequired", NoLCOnly: true, Check: requiredDocRule(model.DocBillOfLading, model.SeverityCritical)},
		{Name: "customsOriginExpected", NoLCOnly: true, Check: requiredDocRule(model.DocCertificateOfOrigin, model.SeverityMajor)},
		{Name: "customsPackingListExpected", NoLCOnly: true, Check: requiredDocRule(model.DocPackingList, model.SeverityMajor)},
	}
}
