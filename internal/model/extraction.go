package model

// ExtractedData holds the structured fields pulled from a single document.
// Every field is optional: a nil pointer means the extractor had no opinion,
// and rules must never treat absence as a mismatch. Fields that only occur on
// specific document types live in their own sub-structs so rule preconditions
// stay type-checkable.
type ExtractedData struct {
	// Commercial terms.
	Amount   *float64 `json:"amount,omitempty"`
	Currency *string  `json:"currency,omitempty"`

	// Parties.
	Beneficiary *string `json:"beneficiary,omitempty"`
	Applicant   *string `json:"applicant,omitempty"`
	IssuingBank *string `json:"issuing_bank,omitempty"`
	Consignee   *string `json:"consignee,omitempty"`
	NotifyParty *string `json:"notify_party,omitempty"`

	// Routing.
	PortOfLoading   *string `json:"port_of_loading,omitempty"`
	PortOfDischarge *string `json:"port_of_discharge,omitempty"`
	VesselName      *string `json:"vessel_name,omitempty"`

	// Cargo.
	GoodsDescription  *string `json:"goods_description,omitempty"`
	Quantity          *string `json:"quantity,omitempty"`
	QuantityTolerance *string `json:"quantity_tolerance,omitempty"` // LC-stated, e.g. "+/- 5%"
	GrossWeight       *string `json:"gross_weight,omitempty"`
	NetWeight         *string `json:"net_weight,omitempty"`

	// Dates (canonical YYYY-MM-DD once assembled).
	IssueDate          *string `json:"issue_date,omitempty"`
	ExpiryDate         *string `json:"expiry_date,omitempty"`
	LatestShipmentDate *string `json:"latest_shipment_date,omitempty"`
	ShipmentDate       *string `json:"shipment_date,omitempty"`

	// Document references.
	LCNumber       *string `json:"lc_number,omitempty"`
	InvoiceNumber  *string `json:"invoice_number,omitempty"`
	BLNumber       *string `json:"bl_number,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`

	// Bill of lading specifics.
	ShippedOnBoard   *bool   `json:"shipped_on_board,omitempty"`
	FreightNotation  *string `json:"freight_notation,omitempty"` // "prepaid" or "collect"
	CarrierName      *string `json:"carrier_name,omitempty"`
	CarrierSignature *bool   `json:"carrier_signature,omitempty"`

	// Inspection.
	InspectionCompany         *string `json:"inspection_company,omitempty"`
	RequiredInspectionCompany *string `json:"required_inspection_company,omitempty"` // from the LC

	// Per-document-type field groups.
	Insurance       *InsuranceFields       `json:"insurance,omitempty"`
	LOI             *LOIFields             `json:"loi,omitempty"`
	WeightOutTurn   *WeightOutTurnFields   `json:"weight_out_turn,omitempty"`
	ExportLicense   *ExportLicenseFields   `json:"export_license,omitempty"`
	Ownership       *OwnershipFields       `json:"ownership,omitempty"`
	TankCleanliness *TankCleanlinessFields `json:"tank_cleanliness,omitempty"`

	// Line items with printed totals, verified deterministically.
	PackingListItems      []PackingListItem `json:"packing_list_items,omitempty"`
	PackingListTotalKg    *float64          `json:"packing_list_total_kg,omitempty"`
	UllageTanks           []UllageTank      `json:"ullage_tanks,omitempty"`
	UllageTotalVolume     *float64          `json:"ullage_total_volume,omitempty"`
	InvoiceLineItems      []InvoiceLineItem `json:"invoice_line_items,omitempty"`
	InvoiceLineItemsTotal *float64          `json:"invoice_line_items_total,omitempty"`
}

// InsuranceFields groups fields specific to insurance certificates.
type InsuranceFields struct {
	InsuredValue  *float64 `json:"insured_value,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	CoverageTerms *string  `json:"coverage_terms,omitempty"`
	PolicyNumber  *string  `json:"policy_number,omitempty"`
}

// LOIFields groups fields specific to letters of indemnity.
type LOIFields struct {
	VesselName *string `json:"vessel_name,omitempty"`
	BLNumber   *string `json:"bl_number,omitempty"`
}

// WeightOutTurnFields groups fields specific to weight out-turn reports.
type WeightOutTurnFields struct {
	BLWeightMT      *float64 `json:"bl_weight_mt,omitempty"`
	OutTurnWeightMT *float64 `json:"out_turn_weight_mt,omitempty"`
	ShortagePercent *float64 `json:"shortage_percent,omitempty"`
}

// ExportLicenseFields groups fields specific to export licenses.
type ExportLicenseFields struct {
	Exporter      *string `json:"exporter,omitempty"`
	ExpiryDate    *string `json:"expiry_date,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
}

// OwnershipFields groups fields specific to certificates of ownership.
type OwnershipFields struct {
	Buyer      *string `json:"buyer,omitempty"`
	VesselName *string `json:"vessel_name,omitempty"`
}

// TankCleanlinessFields groups fields specific to tank cleanliness certificates.
type TankCleanlinessFields struct {
	VesselName     *string `json:"vessel_name,omitempty"`
	InspectionDate *string `json:"inspection_date,omitempty"`
}

// PackingListItem is one row of a packing list.
type PackingListItem struct {
	Description string  `json:"description"`
	NetWeightKg float64 `json:"net_weight_kg"`
}

// UllageTank is one tank row from an ullage report.
type UllageTank struct {
	TankID string  `json:"tank_id"`
	Volume float64 `json:"volume"`
}

// InvoiceLineItem is one line of a commercial invoice.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Str returns the dereferenced string or "" when nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// StrPtr returns a pointer to s. Convenience for building test fixtures.
func StrPtr(s string) *string { return &s }

// F64Ptr returns a pointer to f.
func F64Ptr(f float64) *float64 { return &f }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
