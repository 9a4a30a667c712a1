package crossref

import (
	"context"
	"fmt"
	"math"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// Deterministic sum verification. Line-item arrays are summed here, in this
// process (a collaborator's arithmetic is never trusted) and compared to
// the printed total under a per-document tolerance.

// packingListToleranceKg allows for rounding on printed packing-list totals.
const packingListToleranceKg = 1.0

func checkPackingListMath(_ context.Context, in Input) []model.CrossRefIssue {
	pl := docByType(in.Docs, model.DocPackingList)
	if pl == nil || len(pl.ExtractedData.PackingListItems) == 0 || pl.ExtractedData.PackingListTotalKg == nil {
		return nil
	}
	var sum float64
	for _, item := range pl.ExtractedData.PackingListItems {
		sum += item.NetWeightKg
	}
	printed := *pl.ExtractedData.PackingListTotalKg
	diff := math.Abs(sum - printed)
	if diff <= packingListToleranceKg {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "packingListMath",
		Documents: []string{model.DocPackingList.Display()},
		Values:    []string{fmt.Sprintf("%.2f", printed), fmt.Sprintf("%.2f", sum)},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("packing list line items sum to %.2f kg but the printed total is %.2f kg (difference %.2f kg)",
			sum, printed, diff),
	}}
}

// ullageTolerancePct allows for gauge rounding on tank volume totals.
const ullageTolerancePct = 0.1

func checkUllageMath(_ context.Context, in Input) []model.CrossRefIssue {
	ur := docByType(in.Docs, model.DocUllageReport)
	if ur == nil || len(ur.ExtractedData.UllageTanks) == 0 || ur.ExtractedData.UllageTotalVolume == nil {
		return nil
	}
	var sum float64
	for _, tank := range ur.ExtractedData.UllageTanks {
		sum += tank.Volume
	}
	printed := *ur.ExtractedData.UllageTotalVolume
	if printed == 0 {
		return nil
	}
	diffPct := math.Abs(sum-printed) / math.Abs(printed) * 100
	if diffPct <= ullageTolerancePct {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "ullageMath",
		Documents: []string{model.DocUllageReport.Display()},
		Values:    []string{fmt.Sprintf("%.3f", printed), fmt.Sprintf("%.3f", sum)},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("ullage tank volumes sum to %.3f but the printed total is %.3f (%.2f%% off)",
			sum, printed, diffPct),
	}}
}

// Invoice totals pass when within $1 absolute or 0.01% relative, whichever
// is larger.
const (
	invoiceToleranceAbs = 1.0
	invoiceTolerancePct = 0.01
)

func checkInvoiceMath(_ context.Context, in Input) []model.CrossRefIssue {
	inv := docByType(in.Docs, model.DocCommercialInvoice)
	if inv == nil || len(inv.ExtractedData.InvoiceLineItems) == 0 || inv.ExtractedData.InvoiceLineItemsTotal == nil {
		return nil
	}
	var sum float64
	for _, item := range inv.ExtractedData.InvoiceLineItems {
		sum += item.Amount
	}
	printed := *inv.ExtractedData.InvoiceLineItemsTotal
	diff := math.Abs(sum - printed)
	tolerance := math.Max(invoiceToleranceAbs, math.Abs(printed)*invoiceTolerancePct/100)
	if diff <= tolerance {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "invoiceMath",
		Documents: []string{model.DocCommercialInvoice.Display()},
		Values:    []string{formatAmount(printed), formatAmount(sum)},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("invoice line items sum to %s but the printed total is %s (difference %s)",
			formatAmount(sum), formatAmount(printed), formatAmount(diff)),
	}}
}
