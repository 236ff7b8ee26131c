// internal/pipeline/classify.go
// Maintenance-type code -> semantic category.
package pipeline

// Category is the semantic maintenance category.
type Category string

const (
	CategoryCorrective   Category = "Corrective"
	CategoryPreventive   Category = "Preventive"
	CategoryPredictive   Category = "Predictive"
	CategoryImprovement  Category = "Improvement"
	CategoryInspection   Category = "Inspection"
	CategoryModification Category = "Modification"
	CategoryCalibration  Category = "Calibration"
	CategoryCleaning     Category = "Cleaning"
	CategoryOther        Category = "Other"
)

// typeCategories is the fixed CMMS code table. Kept as data rather than a
// code fork so extra codes observed in newer exports only grow this map.
var typeCategories = map[int]Category{
	7:  CategoryCorrective,
	10: CategoryPreventive,
	22: CategoryPredictive,
	12: CategoryImprovement,
	21: CategoryInspection,
	11: CategoryModification,
	9:  CategoryCalibration,
	5:  CategoryCleaning,
	8:  CategoryOther,
}

// Classify maps an integer maintenance-type code to its category. Total:
// every integer has an output, unknown codes are Other.
func Classify(code int) Category {
	if c, ok := typeCategories[code]; ok {
		return c
	}
	return CategoryOther
}

// ClassifyRaw classifies the raw field value; absent or non-numeric codes
// land in Other.
func ClassifyRaw(s string) Category {
	code, ok := ParseTypeCode(s)
	if !ok {
		return CategoryOther
	}
	return Classify(code)
}
