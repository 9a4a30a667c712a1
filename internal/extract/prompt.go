package extract

import (
	"fmt"
	"strings"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

const extractionSystemPrompt = `You are a trade-finance document examiner. You receive the raw text of one
trade document and return ONLY a JSON object, no prose, with this shape:

{
  "verdict": "GO" | "WAIT" | "NO_GO",
  "issues": [{"type": "...", "severity": "minor"|"major"|"critical", "description": "..."}],
  "extracted_data": { ... },
  "analysis": "one-paragraph summary"
}

Rules:
- Omit any field you cannot find. Never guess values.
- Amounts are plain numbers without currency symbols or separators.
- Dates stay exactly as printed on the document; do not reformat them.
- Do not perform any arithmetic; copy printed totals as printed.`

// typeHints adds per-document-type extraction guidance on top of the shared
// system prompt.
var typeHints = map[model.DocumentType]string{
	model.DocLetterOfCredit: "Extract amount, currency, beneficiary, applicant, issuing_bank, lc_number, " +
		"port_of_loading, port_of_discharge, goods_description, quantity, quantity_tolerance, " +
		"expiry_date, latest_shipment_date, required_inspection_company, freight_notation, vessel_name.",
	model.DocBillOfLading: "Extract bl_number, lc_number, consignee, notify_party, shipped_on_board, " +
		"shipment_date, vessel_name, port_of_loading, port_of_discharge, goods_description, quantity, " +
		"freight_notation, carrier_name, carrier_signature, beneficiary (shipper).",
	model.DocCommercialInvoice: "Extract invoice_number, lc_number, amount, currency, beneficiary (seller), " +
		"applicant (buyer), goods_description, quantity, invoice_line_items " +
		"(description, quantity, unit_price, amount) and invoice_line_items_total as printed.",
	model.DocPackingList: "Extract packing_list_items (description, net_weight_kg) and " +
		"packing_list_total_kg exactly as printed, plus beneficiary, quantity, goods_description.",
	model.DocUllageReport: "Extract ullage_tanks (tank_id, volume) and ullage_total_volume " +
		"exactly as printed, plus vessel_name.",
	model.DocInsuranceCertificate: "Extract insurance.insured_value, insurance.currency, " +
		"insurance.coverage_terms, insurance.policy_number, beneficiary, lc_number.",
	model.DocLetterOfIndemnity:  "Extract loi.vessel_name and loi.bl_number.",
	model.DocWeightOutTurn:      "Extract weight_out_turn.bl_weight_mt, weight_out_turn.out_turn_weight_mt.",
	model.DocExportLicense:      "Extract export_license.exporter, export_license.expiry_date, export_license.license_number.",
	model.DocCertificateOfOwnership: "Extract ownership.buyer and ownership.vessel_name.",
	model.DocTankCleanliness:    "Extract tank_cleanliness.vessel_name and tank_cleanliness.inspection_date.",
}

func buildExtractionPrompt(docType model.DocumentType, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document type: %s\n", docType.Display())
	if hint, ok := typeHints[docType]; ok {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	b.WriteString("\n--- DOCUMENT TEXT ---\n")
	b.WriteString(text)
	return b.String()
}
