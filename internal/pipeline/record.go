// internal/pipeline/record.go
// Raw work-order records as they arrive from the record source.
package pipeline

// RawRecord is one maintenance event exactly as the source supplied it.
// Every field is optional; the CSV exports this feeds on are famous for
// missing columns, renamed columns and locale-formatted values, so all
// normalization happens downstream and never here.
type RawRecord struct {
	Date            string `json:"date,omitempty"`
	EquipmentID     string `json:"equipment_id,omitempty"`
	EquipmentName   string `json:"equipment_name,omitempty"`
	MaintenanceType string `json:"maintenance_type,omitempty"`
	Criticality     string `json:"criticality,omitempty"`
	Analyst         string `json:"analyst,omitempty"`
	State           string `json:"state,omitempty"`
	MaterialCost    string `json:"material_cost,omitempty"`
	LaborCost       string `json:"labor_cost,omitempty"`
}

// Equipment returns the display identity of the equipment: the name when
// present, otherwise the ID. Empty when the row carries neither.
func (r RawRecord) Equipment() string {
	if r.EquipmentName != "" {
		return r.EquipmentName
	}
	return r.EquipmentID
}

// Cost returns material + labor cost with locale formatting resolved.
// Unparseable components count as zero.
func (r RawRecord) Cost() float64 {
	return ParseDecimal(r.MaterialCost) + ParseDecimal(r.LaborCost)
}

// Status is the work-order state vocabulary.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusRequested  Status = "Requested"
	StatusStarted    Status = "Started"
	StatusReleased   Status = "Released"
	StatusSuspended  Status = "Suspended"
)

// AllStatuses lists the vocabulary in presentation order.
var AllStatuses = []Status{
	StatusNotStarted,
	StatusRequested,
	StatusStarted,
	StatusReleased,
	StatusSuspended,
}
