package pii

// Type identifies a category of personally identifiable information.
type Type string

const (
	TypeEmail      Type = "email"
	TypePhone      Type = "phone"
	TypeFullName   Type = "full_name"
	TypeFirstName  Type = "first_name"
	TypeLastName   Type = "last_name"
	TypeCreditCard Type = "credit_card"
)

// Detection describes a single PII hit inside a scanned string.
//
// Start and End are character offsets forming the half-open span
// [Start, End). A detection with End <= Start (or negative offsets) means
// the position is unknown; callers fall back to plain substring replacement
// for such detections.
type Detection struct {
	Type       Type
	Value      string
	Confidence float64
	Start      int
	End        int
}

// HasSpan reports whether the detection carries usable position information.
func (d Detection) HasSpan() bool {
	return d.Start >= 0 && d.End > d.Start
}

// Result summarizes a single sanitization run.
type Result struct {
	Success          bool   `json:"success"`
	RecordsProcessed int    `json:"records_processed"`
	FieldsDetected   int    `json:"pii_fields_detected"`
	ReplacementsMade int    `json:"pii_replacements_made"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

// Stats carries the running counters accumulated while sanitizing records.
type Stats struct {
	FieldsDetected   int `json:"fields_detected"`
	ReplacementsMade int `json:"replacements_made"`
}
