// internal/pipeline/csv.go
// CSV decoding of raw work-order exports.
package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvAliases maps normalized header names onto record fields. The
// export tool this data comes from writes Portuguese headers; English
// variants are accepted for hand-built files.
var csvAliases = map[string]string{
	"data manutenção":    "date",
	"data manutencao":    "date",
	"data":               "date",
	"date":               "date",
	"equipamento":        "equipment_id",
	"equipment":          "equipment_id",
	"equipment_id":       "equipment_id",
	"nome equipamento":   "equipment_name",
	"equipment_name":     "equipment_name",
	"tipo de manutenção": "maintenance_type",
	"tipo de manutencao": "maintenance_type",
	"tipo":               "maintenance_type",
	"maintenance_type":   "maintenance_type",
	"criticidade":        "criticality",
	"criticality":        "criticality",
	"nome do analista":   "analyst",
	"analista":           "analyst",
	"analyst":            "analyst",
	"estado":             "state",
	"state":              "state",
	"valor material":     "material_cost",
	"material_cost":      "material_cost",
	"valor mão de obra":  "labor_cost",
	"valor mao de obra":  "labor_cost",
	"labor_cost":         "labor_cost",
}

// ReadCSV decodes a raw work-order export. Header names are matched
// case-insensitively through the alias table; unknown columns are
// ignored. Rows keep their raw string values: normalization happens
// later in the pipeline, never at ingest.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	fields := make([]string, len(header))
	known := 0
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.Trim(h, "\ufeff")))
		if field, ok := csvAliases[key]; ok {
			fields[i] = field
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("no recognized columns in header %v", header)
	}

	var out []RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(out)+2, err)
		}

		var rec RawRecord
		for i, cell := range row {
			if i >= len(fields) {
				break
			}
			cell = strings.TrimSpace(cell)
			switch fields[i] {
			case "date":
				rec.Date = cell
			case "equipment_id":
				rec.EquipmentID = cell
			case "equipment_name":
				rec.EquipmentName = cell
			case "maintenance_type":
				rec.MaintenanceType = cell
			case "criticality":
				rec.Criticality = cell
			case "analyst":
				rec.Analyst = cell
			case "state":
				rec.State = cell
			case "material_cost":
				rec.MaterialCost = cell
			case "labor_cost":
				rec.LaborCost = cell
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
