package verify

// FieldID identifies one verifiable attribute of a label submission.
type FieldID string

const (
	FieldBrandName         FieldID = "brand_name"
	FieldProductType       FieldID = "product_type"
	FieldABV               FieldID = "abv"
	FieldNetContents       FieldID = "net_contents"
	FieldGovernmentWarning FieldID = "government_warning"
)

// GovernmentWarningText is the phrase every label must carry. It is a
// process-wide constant, never supplied by the submitter, and is matched
// like any other free-text field.
const GovernmentWarningText = "GOVERNMENT WARNING"

// fieldSpec is the static per-field configuration. Only required fields gate
// the overall verification outcome; the rest are reported informationally.
type fieldSpec struct {
	ID       FieldID
	Required bool
	Numeric  bool // matched by numeric equality instead of substring
}

// fieldOrder is the fixed evaluation (and presentation) order.
var fieldOrder = []fieldSpec{
	{ID: FieldBrandName, Required: true},
	{ID: FieldProductType, Required: true},
	{ID: FieldABV, Required: true, Numeric: true},
	{ID: FieldNetContents},
	{ID: FieldGovernmentWarning},
}
