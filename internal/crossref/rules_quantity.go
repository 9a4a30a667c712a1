package crossref

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/normalize"
)

// defaultQuantityTolerancePct is the UCP 600 Art. 30(b) allowance applied
// when the credit states no tolerance of its own.
const defaultQuantityTolerancePct = 5.0

func checkAmountVsLC(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	inv := docByType(in.Docs, model.DocCommercialInvoice)
	if lc == nil || inv == nil || lc.ExtractedData.Amount == nil || inv.ExtractedData.Amount == nil {
		return nil
	}
	lcAmount := *lc.ExtractedData.Amount
	invAmount := *inv.ExtractedData.Amount
	if invAmount <= lcAmount {
		return nil
	}
	overPct := (invAmount - lcAmount) / lcAmount * 100
	return []model.CrossRefIssue{{
		Field:     "amount",
		Documents: []string{model.DocLetterOfCredit.Display(), model.DocCommercialInvoice.Display()},
		Values:    []string{formatAmount(lcAmount), formatAmount(invAmount)},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("invoice amount %s exceeds the credit amount %s by %.1f%%",
			formatAmount(invAmount), formatAmount(lcAmount), overPct),
	}}
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

var tolerancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\+\s*/?\s*-\s*(\d+(?:\.\d+)?)\s*(?:%|PCT|PERCENT)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:%|PCT|PERCENT)\s+MORE\s+OR\s+LESS`),
}

// quantityTolerance resolves the allowed deviation and its source. The
// credit's stated tolerance is authoritative; otherwise the 5% default
// applies. The source must be reported in the issue text.
func quantityTolerance(lc *model.DocumentResult) (pct float64, source string) {
	if lc != nil {
		stated := model.Str(lc.ExtractedData.QuantityTolerance)
		for _, text := range []string{stated, lc.RawText} {
			if !normalize.IsSpecified(text) {
				continue
			}
			for _, re := range tolerancePatterns {
				if m := re.FindStringSubmatch(text); m != nil {
					if v, err := strconv.ParseFloat(m[1], 64); err == nil {
						return v, "LC-specified"
					}
				}
			}
		}
	}
	return defaultQuantityTolerancePct, "default"
}

// quantityBearingTypes lists every document type that can state a quantity.
var quantityBearingTypes = []model.DocumentType{
	model.DocLetterOfCredit,
	model.DocCommercialInvoice,
	model.DocBillOfLading,
	model.DocPackingList,
	model.DocCertificateOfQuantity,
	model.DocCertificateOfOrigin,
	model.DocCargoManifest,
}

// checkQuantityTolerance compares every stated quantity against the declared
// reference (the LC; the invoice on customs-only shipments). Documents
// outside the tolerance ⇒ major.
func checkQuantityTolerance(_ context.Context, in Input) []model.CrossRefIssue {
	values := collect(in.Docs, quantityBearingTypes,
		func(d *model.ExtractedData) *string { return d.Quantity })
	if len(values) < 2 {
		return nil
	}
	ref, rest := pickReference(values, model.DocLetterOfCredit, model.DocCommercialInvoice)

	refQty, ok := normalize.ExtractNumber(ref.value)
	if !ok || refQty == 0 {
		return nil
	}
	tolPct, source := quantityTolerance(docByType(in.Docs, model.DocLetterOfCredit))

	var outside []fieldValue
	var worstDevPct float64
	for _, v := range rest {
		qty, ok := normalize.ExtractNumber(v.value)
		if !ok {
			continue
		}
		devPct := math.Abs(qty-refQty) / refQty * 100
		if devPct > tolPct {
			outside = append(outside, v)
			if devPct > worstDevPct {
				worstDevPct = devPct
			}
		}
	}
	if len(outside) == 0 {
		return nil
	}
	desc := fmt.Sprintf("quantity on %s deviates %.1f%% from %q on %s, beyond the %.1f%% tolerance (%s)",
		joinDisplay(outside), worstDevPct, ref.value, ref.doc.Display(), tolPct, source)
	return []model.CrossRefIssue{*mismatchIssue("quantity", model.SeverityMajor, ref, outside, desc)}
}

// minInsuranceCoverage is the UCP 600 Art. 28(f)(ii) floor: 110% of the
// reference value.
const minInsuranceCoverage = 1.10

func checkInsuranceCoverage(_ context.Context, in Input) []model.CrossRefIssue {
	ins := docByType(in.Docs, model.DocInsuranceCertificate)
	if ins == nil || ins.ExtractedData.Insurance == nil || ins.ExtractedData.Insurance.InsuredValue == nil {
		return nil
	}
	insured := *ins.ExtractedData.Insurance.InsuredValue

	// Reference value: invoice amount, falling back to the credit amount.
	var reference float64
	var refDoc model.DocumentType
	if inv := docByType(in.Docs, model.DocCommercialInvoice); inv != nil && inv.ExtractedData.Amount != nil {
		reference, refDoc = *inv.ExtractedData.Amount, model.DocCommercialInvoice
	} else if lc := docByType(in.Docs, model.DocLetterOfCredit); lc != nil && lc.ExtractedData.Amount != nil {
		reference, refDoc = *lc.ExtractedData.Amount, model.DocLetterOfCredit
	} else {
		return nil
	}
	if reference == 0 || insured >= reference*minInsuranceCoverage {
		return nil
	}
	coveragePct := insured / reference * 100
	return []model.CrossRefIssue{{
		Field:     "insuranceCoverage",
		Documents: []string{model.DocInsuranceCertificate.Display(), refDoc.Display()},
		Values:    []string{formatAmount(insured), formatAmount(reference)},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("insured value %s covers only %.1f%% of the %s value %s; at least 110%% is required",
			formatAmount(insured), coveragePct, refDoc.Display(), formatAmount(reference)),
	}}
}

// outTurnAllowancePct is the customary trade allowance for transit loss
// before a shortage becomes a discrepancy.
const outTurnAllowancePct = 0.5

func checkWeightOutTurn(_ context.Context, in Input) []model.CrossRefIssue {
	wot := docByType(in.Docs, model.DocWeightOutTurn)
	if wot == nil || wot.ExtractedData.WeightOutTurn == nil {
		return nil
	}
	fields := wot.ExtractedData.WeightOutTurn

	var shortagePct float64
	switch {
	case fields.ShortagePercent != nil:
		shortagePct = *fields.ShortagePercent
	case fields.BLWeightMT != nil && fields.OutTurnWeightMT != nil && *fields.BLWeightMT != 0:
		shortagePct = (*fields.BLWeightMT - *fields.OutTurnWeightMT) / *fields.BLWeightMT * 100
	default:
		return nil
	}
	if math.Abs(shortagePct) <= outTurnAllowancePct {
		return nil
	}
	kind := "shortage"
	if shortagePct < 0 {
		kind = "overage"
	}
	return []model.CrossRefIssue{{
		Field:     "weightOutTurn",
		Documents: []string{model.DocWeightOutTurn.Display()},
		Values:    []string{fmt.Sprintf("%.2f%%", shortagePct)},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("out-turn %s of %.2f%% exceeds the %.1f%% trade allowance",
			kind, math.Abs(shortagePct), outTurnAllowancePct),
	}}
}
