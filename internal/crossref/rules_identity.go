package crossref

import (
	"context"
	"fmt"
	"strings"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/normalize"
)

// portBearingTypes lists every document type that can state a port.
var portBearingTypes = []model.DocumentType{
	model.DocLetterOfCredit,
	model.DocBillOfLading,
	model.DocCommercialInvoice,
	model.DocCertificateOfOrigin,
	model.DocInspectionCertificate,
	model.DocCertificateOfQuality,
	model.DocCertificateOfQuantity,
	model.DocCargoManifest,
}

func checkPortOfLoading(_ context.Context, in Input) []model.CrossRefIssue {
	return checkPort(in, "portOfLoading", "port of loading",
		func(d *model.ExtractedData) *string { return d.PortOfLoading })
}

func checkPortOfDischarge(_ context.Context, in Input) []model.CrossRefIssue {
	return checkPort(in, "portOfDischarge", "port of discharge",
		func(d *model.ExtractedData) *string { return d.PortOfDischarge })
}

// checkPort compares a port field across all port-bearing documents against
// the declared reference (LC, else B/L). Any non-matching document ⇒ major.
func checkPort(in Input, field, label string, get func(*model.ExtractedData) *string) []model.CrossRefIssue {
	values := collect(in.Docs, portBearingTypes, get)
	if len(values) < 2 {
		return nil
	}
	ref, rest := pickReference(values, model.DocLetterOfCredit, model.DocBillOfLading)

	var mismatched []fieldValue
	for _, v := range rest {
		if !normalize.PortsMatch(ref.value, v.value) {
			mismatched = append(mismatched, v)
		}
	}
	if len(mismatched) == 0 {
		return nil
	}
	desc := fmt.Sprintf("%s %q on %s does not match %q on %s",
		label, mismatched[0].value, joinDisplay(mismatched), ref.value, ref.doc.Display())
	return []model.CrossRefIssue{*mismatchIssue(field, model.SeverityMajor, ref, mismatched, desc)}
}

// beneficiaryBearingTypes lists the documents whose beneficiary must agree.
var beneficiaryBearingTypes = []model.DocumentType{
	model.DocLetterOfCredit,
	model.DocCommercialInvoice,
	model.DocBillOfLading,
	model.DocPackingList,
	model.DocCertificateOfOrigin,
	model.DocInsuranceCertificate,
	model.DocBeneficiaryCertificate,
}

func checkBeneficiary(_ context.Context, in Input) []model.CrossRefIssue {
	values := collect(in.Docs, beneficiaryBearingTypes,
		func(d *model.ExtractedData) *string { return d.Beneficiary })
	if len(values) < 2 {
		return nil
	}
	ref, rest := pickReference(values, model.DocLetterOfCredit)

	var mismatched []fieldValue
	for _, v := range rest {
		if !normalize.NamesMatch(ref.value, v.value) {
			mismatched = append(mismatched, v)
		}
	}
	if len(mismatched) == 0 {
		return nil
	}
	desc := fmt.Sprintf("beneficiary %q on %s does not match %q on %s",
		mismatched[0].value, joinDisplay(mismatched), ref.value, ref.doc.Display())
	return []model.CrossRefIssue{*mismatchIssue("beneficiary", model.SeverityCritical, ref, mismatched, desc)}
}

// lcNumberBearingTypes lists the documents that quote the credit number.
var lcNumberBearingTypes = []model.DocumentType{
	model.DocLetterOfCredit,
	model.DocCommercialInvoice,
	model.DocBillOfLading,
	model.DocPackingList,
	model.DocCertificateOfOrigin,
	model.DocInsuranceCertificate,
	model.DocBeneficiaryCertificate,
	model.DocBillOfExchange,
}

func checkLCNumber(_ context.Context, in Input) []model.CrossRefIssue {
	values := collect(in.Docs, lcNumberBearingTypes,
		func(d *model.ExtractedData) *string { return d.LCNumber })
	if len(values) < 2 {
		return nil
	}
	ref, rest := pickReference(values, model.DocLetterOfCredit)

	var mismatched []fieldValue
	for _, v := range rest {
		if normalizeRef(v.value) != normalizeRef(ref.value) {
			mismatched = append(mismatched, v)
		}
	}
	if len(mismatched) == 0 {
		return nil
	}
	desc := fmt.Sprintf("credit number %q on %s does not match %q on %s",
		mismatched[0].value, joinDisplay(mismatched), ref.value, ref.doc.Display())
	return []model.CrossRefIssue{*mismatchIssue("lcNumber", model.SeverityCritical, ref, mismatched, desc)}
}

// vesselBearingTypes lists certificates that can name the carrying vessel.
// The B/L is the reference; the LC participates only when it names one.
var vesselBearingTypes = []model.DocumentType{
	model.DocLetterOfCredit,
	model.DocCertificateOfQuality,
	model.DocCertificateOfQuantity,
	model.DocInspectionCertificate,
	model.DocUllageReport,
	model.DocCargoManifest,
	model.DocSurveyReport,
	model.DocNoticeOfReadiness,
}

func checkVesselName(_ context.Context, in Input) []model.CrossRefIssue {
	bl := docByType(in.Docs, model.DocBillOfLading)
	if bl == nil {
		return nil
	}
	refVessel := model.Str(bl.ExtractedData.VesselName)
	if !normalize.IsSpecified(refVessel) {
		return nil
	}
	// LC-stated vessel only binds in LC mode.
	types := vesselBearingTypes
	if in.Mode != model.PaymentModeLC {
		types = types[1:]
	}
	values := collect(in.Docs, types,
		func(d *model.ExtractedData) *string { return d.VesselName })

	ref := fieldValue{doc: model.DocBillOfLading, value: refVessel}
	var mismatched []fieldValue
	for _, v := range values {
		if !normalize.VesselsMatch(refVessel, v.value) {
			mismatched = append(mismatched, v)
		}
	}
	if len(mismatched) == 0 {
		return nil
	}
	desc := fmt.Sprintf("vessel %q on %s does not match %q on the Bill of Lading",
		mismatched[0].value, joinDisplay(mismatched), refVessel)
	return []model.CrossRefIssue{*mismatchIssue("vesselName", model.SeverityMajor, ref, mismatched, desc)}
}

func checkInspectionCompany(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	cert := docByType(in.Docs, model.DocInspectionCertificate)
	if lc == nil || cert == nil {
		return nil
	}
	required := model.Str(lc.ExtractedData.RequiredInspectionCompany)
	actual := model.Str(cert.ExtractedData.InspectionCompany)
	if !normalize.IsSpecified(required) || !normalize.IsSpecified(actual) {
		return nil
	}
	if normalize.NamesMatch(required, actual) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "inspectionCompany",
		Documents: []string{model.DocLetterOfCredit.Display(), model.DocInspectionCertificate.Display()},
		Values:    []string{required, actual},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("credit requires inspection by %q but the certificate was issued by %q",
			required, actual),
	}}
}

// genericOrderWords never count as a distinctive reference to the issuing
// bank inside an order-party clause.
var genericOrderWords = map[string]bool{
	"bank": true, "the": true, "of": true, "and": true, "to": true,
	"order": true, "international": true, "national": true, "co": true,
	"company": true, "corp": true, "limited": true, "ltd": true, "plc": true,
}

func checkConsigneeOrderParty(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if lc == nil || bl == nil {
		return nil
	}
	consignee := model.Str(bl.ExtractedData.Consignee)
	if !normalize.IsSpecified(consignee) {
		return nil
	}
	lower := strings.ToLower(consignee)
	if !strings.Contains(lower, "to order") {
		return []model.CrossRefIssue{{
			Field:     "consignee",
			Documents: []string{model.DocBillOfLading.Display()},
			Values:    []string{consignee},
			Severity:  model.SeverityCritical,
			Description: fmt.Sprintf("B/L consignee %q is not made out to order; the credit requires a negotiable bill",
				consignee),
		}}
	}

	issuingBank := model.Str(lc.ExtractedData.IssuingBank)
	idx := strings.Index(lower, "to order of")
	if idx < 0 || !normalize.IsSpecified(issuingBank) {
		// Blank "to order" endorsement, or no stated issuing bank to check.
		return nil
	}
	orderParty := strings.TrimSpace(consignee[idx+len("to order of"):])
	if orderPartyReferencesBank(orderParty, issuingBank) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "consignee",
		Documents: []string{model.DocBillOfLading.Display(), model.DocLetterOfCredit.Display()},
		Values:    []string{consignee, issuingBank},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("B/L is to order of %q which does not clearly reference the issuing bank %q",
			orderParty, issuingBank),
	}}
}

// orderPartyReferencesBank reports whether the order party shares a
// distinctive word with the issuing bank's name.
func orderPartyReferencesBank(orderParty, issuingBank string) bool {
	partyWords := strings.Fields(normalize.CanonicalName(orderParty))
	bankWords := make(map[string]bool)
	for _, w := range strings.Fields(normalize.CanonicalName(issuingBank)) {
		if !genericOrderWords[w] {
			bankWords[w] = true
		}
	}
	for _, w := range partyWords {
		if bankWords[w] {
			return true
		}
	}
	return false
}

func checkShippedOnBoard(_ context.Context, in Input) []model.CrossRefIssue {
	bl := docByType(in.Docs, model.DocBillOfLading)
	if bl == nil || bl.ExtractedData.ShippedOnBoard == nil || *bl.ExtractedData.ShippedOnBoard {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:       "shippedOnBoard",
		Documents:   []string{model.DocBillOfLading.Display()},
		Values:      []string{"false"},
		Severity:    model.SeverityCritical,
		Description: "Bill of Lading carries no shipped-on-board notation",
	}}
}

func checkFreightNotation(_ context.Context, in Input) []model.CrossRefIssue {
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if lc == nil || bl == nil {
		return nil
	}
	want := strings.ToLower(model.Str(lc.ExtractedData.FreightNotation))
	got := strings.ToLower(model.Str(bl.ExtractedData.FreightNotation))
	if !normalize.IsSpecified(want) || !normalize.IsSpecified(got) || want == got {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "freightNotation",
		Documents: []string{model.DocLetterOfCredit.Display(), model.DocBillOfLading.Display()},
		Values:    []string{want, got},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("credit requires freight %s but the B/L is marked freight %s",
			want, got),
	}}
}

func checkCarrierSignature(_ context.Context, in Input) []model.CrossRefIssue {
	bl := docByType(in.Docs, model.DocBillOfLading)
	if bl == nil || bl.ExtractedData.CarrierSignature == nil || *bl.ExtractedData.CarrierSignature {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:       "carrierSignature",
		Documents:   []string{model.DocBillOfLading.Display()},
		Values:      []string{"unsigned"},
		Severity:    model.SeverityCritical,
		Description: "Bill of Lading is not signed by or for the carrier",
	}}
}

func checkCarrierName(_ context.Context, in Input) []model.CrossRefIssue {
	bl := docByType(in.Docs, model.DocBillOfLading)
	if bl == nil {
		return nil
	}
	if normalize.IsSpecified(model.Str(bl.ExtractedData.CarrierName)) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:       "carrierName",
		Documents:   []string{model.DocBillOfLading.Display()},
		Values:      []string{"absent"},
		Severity:    model.SeverityMajor,
		Description: "Bill of Lading does not identify the carrier by name",
	}}
}
