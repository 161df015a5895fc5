package domain

// Action requested by the vendor
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionQuery  Action = "query"
)

// QueryType read-only query variants
type QueryType string

const (
	QueryMyAppointments QueryType = "my_appointments"
	QueryAvailability   QueryType = "availability"
)

// Intent structured booking request extracted from free text
type Intent struct {
	Action       Action          `json:"action"`
	Date         string          `json:"date,omitempty"` // YYYY-MM-DD
	Hour         *int            `json:"hour,omitempty"`
	Type         AppointmentType `json:"type,omitempty"`
	TrackingCode string          `json:"tracking_code,omitempty"`
	QueryType    QueryType       `json:"query_type,omitempty"`
	VendorName   string          `json:"vendor_name,omitempty"`
	VendorEmail  string          `json:"vendor_email,omitempty"`
	CarrierName  string          `json:"carrier_name,omitempty"`
}

// IntentBackend which extractor produced the intent
type IntentBackend string

const (
	BackendModel    IntentBackend = "model"
	BackendFallback IntentBackend = "fallback"
)

// Resolution result of intent resolution: either an intent or a clarification request
type Resolution struct {
	Intent        *Intent
	Clarification string
	Backend       IntentBackend
}

// NeedsClarification returns true if the resolver could not produce an executable intent
func (r *Resolution) NeedsClarification() bool {
	return r.Clarification != "" || r.Intent == nil
}
