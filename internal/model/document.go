package model

// DocumentType identifies the kind of trade document in a presentation package.
type DocumentType string

const (
	DocLetterOfCredit         DocumentType = "letter_of_credit"
	DocBillOfLading           DocumentType = "bill_of_lading"
	DocCommercialInvoice      DocumentType = "commercial_invoice"
	DocPackingList            DocumentType = "packing_list"
	DocCertificateOfOrigin    DocumentType = "certificate_of_origin"
	DocCertificateOfQuality   DocumentType = "certificate_of_quality"
	DocCertificateOfQuantity  DocumentType = "certificate_of_quantity"
	DocInsuranceCertificate   DocumentType = "insurance_certificate"
	DocInspectionCertificate  DocumentType = "inspection_certificate"
	DocBillOfExchange         DocumentType = "bill_of_exchange"
	DocBeneficiaryCertificate DocumentType = "beneficiary_certificate"
	DocLetterOfIndemnity      DocumentType = "letter_of_indemnity"
	DocUllageReport           DocumentType = "ullage_report"
	DocWeightOutTurn          DocumentType = "weight_out_turn"
	DocExportLicense          DocumentType = "export_license"
	DocCertificateOfOwnership DocumentType = "certificate_of_ownership"
	DocTankCleanliness        DocumentType = "tank_cleanliness_certificate"
	DocCargoManifest          DocumentType = "cargo_manifest"
	DocSurveyReport           DocumentType = "survey_report"
	DocDraftSurvey            DocumentType = "draft_survey"
	DocTimeSheet              DocumentType = "time_sheet"
	DocNoticeOfReadiness      DocumentType = "notice_of_readiness"
	DocStatementOfFacts       DocumentType = "statement_of_facts"
	DocMasterReceipt          DocumentType = "master_receipt"
	DocOther                  DocumentType = "other"
)

// displayNames maps document types to the names used in issue descriptions.
var displayNames = map[DocumentType]string{
	DocLetterOfCredit:         "Letter of Credit",
	DocBillOfLading:           "Bill of Lading",
	DocCommercialInvoice:      "Commercial Invoice",
	DocPackingList:            "Packing List",
	DocCertificateOfOrigin:    "Certificate of Origin",
	DocCertificateOfQuality:   "Certificate of Quality",
	DocCertificateOfQuantity:  "Certificate of Quantity",
	DocInsuranceCertificate:   "Insurance Certificate",
	DocInspectionCertificate:  "Inspection Certificate",
	DocBillOfExchange:         "Bill of Exchange",
	DocBeneficiaryCertificate: "Beneficiary Certificate",
	DocLetterOfIndemnity:      "Letter of Indemnity",
	DocUllageReport:           "Ullage Report",
	DocWeightOutTurn:          "Weight Out-Turn Report",
	DocExportLicense:          "Export License",
	DocCertificateOfOwnership: "Certificate of Ownership",
	DocTankCleanliness:        "Tank Cleanliness Certificate",
	DocCargoManifest:          "Cargo Manifest",
	DocSurveyReport:           "Survey Report",
	DocDraftSurvey:            "Draft Survey",
	DocTimeSheet:              "Time Sheet",
	DocNoticeOfReadiness:      "Notice of Readiness",
	DocStatementOfFacts:       "Statement of Facts",
	DocMasterReceipt:          "Master's Receipt",
	DocOther:                  "Other Document",
}

// Display returns the human-readable name for a document type.
func (d DocumentType) Display() string {
	if name, ok := displayNames[d]; ok {
		return name
	}
	return string(d)
}

// Valid reports whether the document type is a known enumeration value.
func (d DocumentType) Valid() bool {
	_, ok := displayNames[d]
	return ok
}

// InputDocument is one raw document submitted for validation.
type InputDocument struct {
	Type DocumentType `json:"type"`
	Text string       `json:"text"`
}

// Channel identifies the messaging channel a validation request arrived on.
type Channel string

const (
	ChannelAPI      Channel = "api"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWeb      Channel = "web"
)

// PackageInput is the full request to validate a document package.
type PackageInput struct {
	Documents        []InputDocument `json:"documents"`
	ClientIdentifier string          `json:"client_identifier"`
	Channel          Channel         `json:"channel"`
}
