package crossref

import (
	"context"
	"fmt"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
	"github.com/LucasDotTrade/lucas-brain/internal/normalize"
)

// Template rules for the long tail of oil-and-gas certificates: normalize,
// compare against the reference document, assign severity.

func checkLOIVessel(_ context.Context, in Input) []model.CrossRefIssue {
	loi := docByType(in.Docs, model.DocLetterOfIndemnity)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if loi == nil || bl == nil || loi.ExtractedData.LOI == nil {
		return nil
	}
	loiVessel := model.Str(loi.ExtractedData.LOI.VesselName)
	blVessel := model.Str(bl.ExtractedData.VesselName)
	if !normalize.IsSpecified(loiVessel) || !normalize.IsSpecified(blVessel) {
		return nil
	}
	if normalize.VesselsMatch(loiVessel, blVessel) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "loiVessel",
		Documents: []string{model.DocLetterOfIndemnity.Display(), model.DocBillOfLading.Display()},
		Values:    []string{loiVessel, blVessel},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("letter of indemnity names vessel %q but the B/L names %q",
			loiVessel, blVessel),
	}}
}

func checkLOIBLNumber(_ context.Context, in Input) []model.CrossRefIssue {
	loi := docByType(in.Docs, model.DocLetterOfIndemnity)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if loi == nil || bl == nil || loi.ExtractedData.LOI == nil {
		return nil
	}
	loiBL := model.Str(loi.ExtractedData.LOI.BLNumber)
	blNum := model.Str(bl.ExtractedData.BLNumber)
	if !normalize.IsSpecified(loiBL) || !normalize.IsSpecified(blNum) {
		return nil
	}
	if normalizeRef(loiBL) == normalizeRef(blNum) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "loiBLNumber",
		Documents: []string{model.DocLetterOfIndemnity.Display(), model.DocBillOfLading.Display()},
		Values:    []string{loiBL, blNum},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("letter of indemnity references B/L %q but the presented B/L is %q",
			loiBL, blNum),
	}}
}

func checkExportLicenseExporter(_ context.Context, in Input) []model.CrossRefIssue {
	lic := docByType(in.Docs, model.DocExportLicense)
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	if lic == nil || lc == nil || lic.ExtractedData.ExportLicense == nil {
		return nil
	}
	exporter := model.Str(lic.ExtractedData.ExportLicense.Exporter)
	beneficiary := model.Str(lc.ExtractedData.Beneficiary)
	if !normalize.IsSpecified(exporter) || !normalize.IsSpecified(beneficiary) {
		return nil
	}
	if normalize.NamesMatch(exporter, beneficiary) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "exportLicenseExporter",
		Documents: []string{model.DocExportLicense.Display(), model.DocLetterOfCredit.Display()},
		Values:    []string{exporter, beneficiary},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("export license is issued to %q, not the credit beneficiary %q",
			exporter, beneficiary),
	}}
}

func checkExportLicenseExpiry(_ context.Context, in Input) []model.CrossRefIssue {
	lic := docByType(in.Docs, model.DocExportLicense)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if lic == nil || bl == nil || lic.ExtractedData.ExportLicense == nil {
		return nil
	}
	expiry, ok1 := parseISO(model.Str(lic.ExtractedData.ExportLicense.ExpiryDate))
	shipped, ok2 := parseISO(model.Str(bl.ExtractedData.ShipmentDate))
	if !ok1 || !ok2 || !shipped.After(expiry) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "exportLicenseExpiry",
		Documents: []string{model.DocExportLicense.Display(), model.DocBillOfLading.Display()},
		Values:    []string{expiry.Format("2006-01-02"), shipped.Format("2006-01-02")},
		Severity:  model.SeverityCritical,
		Description: fmt.Sprintf("export license expired on %s, before the shipment date %s",
			expiry.Format("2006-01-02"), shipped.Format("2006-01-02")),
	}}
}

func checkOwnershipBuyer(_ context.Context, in Input) []model.CrossRefIssue {
	own := docByType(in.Docs, model.DocCertificateOfOwnership)
	lc := docByType(in.Docs, model.DocLetterOfCredit)
	if own == nil || lc == nil || own.ExtractedData.Ownership == nil {
		return nil
	}
	buyer := model.Str(own.ExtractedData.Ownership.Buyer)
	applicant := model.Str(lc.ExtractedData.Applicant)
	if !normalize.IsSpecified(buyer) || !normalize.IsSpecified(applicant) {
		return nil
	}
	if normalize.NamesMatch(buyer, applicant) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "ownershipBuyer",
		Documents: []string{model.DocCertificateOfOwnership.Display(), model.DocLetterOfCredit.Display()},
		Values:    []string{buyer, applicant},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("certificate of ownership names buyer %q, not the credit applicant %q",
			buyer, applicant),
	}}
}

func checkOwnershipVessel(_ context.Context, in Input) []model.CrossRefIssue {
	own := docByType(in.Docs, model.DocCertificateOfOwnership)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if own == nil || bl == nil || own.ExtractedData.Ownership == nil {
		return nil
	}
	ownVessel := model.Str(own.ExtractedData.Ownership.VesselName)
	blVessel := model.Str(bl.ExtractedData.VesselName)
	if !normalize.IsSpecified(ownVessel) || !normalize.IsSpecified(blVessel) {
		return nil
	}
	if normalize.VesselsMatch(ownVessel, blVessel) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "ownershipVessel",
		Documents: []string{model.DocCertificateOfOwnership.Display(), model.DocBillOfLading.Display()},
		Values:    []string{ownVessel, blVessel},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("certificate of ownership names vessel %q but the B/L names %q",
			ownVessel, blVessel),
	}}
}

func checkTankCleanlinessVessel(_ context.Context, in Input) []model.CrossRefIssue {
	tc := docByType(in.Docs, model.DocTankCleanliness)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if tc == nil || bl == nil || tc.ExtractedData.TankCleanliness == nil {
		return nil
	}
	tcVessel := model.Str(tc.ExtractedData.TankCleanliness.VesselName)
	blVessel := model.Str(bl.ExtractedData.VesselName)
	if !normalize.IsSpecified(tcVessel) || !normalize.IsSpecified(blVessel) {
		return nil
	}
	if normalize.VesselsMatch(tcVessel, blVessel) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "tankCleanlinessVessel",
		Documents: []string{model.DocTankCleanliness.Display(), model.DocBillOfLading.Display()},
		Values:    []string{tcVessel, blVessel},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("tank cleanliness certificate names vessel %q but the B/L names %q",
			tcVessel, blVessel),
	}}
}

// checkTankCleanlinessDate flags a cleanliness inspection dated after
// shipment: tanks must be certified clean before loading.
func checkTankCleanlinessDate(_ context.Context, in Input) []model.CrossRefIssue {
	tc := docByType(in.Docs, model.DocTankCleanliness)
	bl := docByType(in.Docs, model.DocBillOfLading)
	if tc == nil || bl == nil || tc.ExtractedData.TankCleanliness == nil {
		return nil
	}
	inspected, ok1 := parseISO(model.Str(tc.ExtractedData.TankCleanliness.InspectionDate))
	shipped, ok2 := parseISO(model.Str(bl.ExtractedData.ShipmentDate))
	if !ok1 || !ok2 || !inspected.After(shipped) {
		return nil
	}
	return []model.CrossRefIssue{{
		Field:     "tankCleanlinessDate",
		Documents: []string{model.DocTankCleanliness.Display(), model.DocBillOfLading.Display()},
		Values:    []string{inspected.Format("2006-01-02"), shipped.Format("2006-01-02")},
		Severity:  model.SeverityMajor,
		Description: fmt.Sprintf("tank cleanliness inspection on %s postdates loading on %s",
			inspected.Format("2006-01-02"), shipped.Format("2006-01-02")),
	}}
}
