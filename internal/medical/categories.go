// Package medical holds the static merchant-category table that drives HSA
// qualification decisions.
package medical

// Category describes one expense category and its qualification verdict per
// the simulated IRS rules.
type Category struct {
	Category    string `json:"category"`
	IsQualified bool   `json:"isQualified"`
	Description string `json:"description"`
}

var categories = []Category{
	{Category: "doctor_visit", IsQualified: true, Description: "Doctor office visits and consultations"},
	{Category: "prescription_medication", IsQualified: true, Description: "Prescription drugs and medications"},
	{Category: "dental_care", IsQualified: true, Description: "Dental treatment and procedures"},
	{Category: "vision_care", IsQualified: true, Description: "Eye exams, glasses, and contact lenses"},
	{Category: "hospital_services", IsQualified: true, Description: "Hospital stays and medical procedures"},
	{Category: "laboratory_tests", IsQualified: true, Description: "Medical tests and laboratory services"},
	{Category: "physical_therapy", IsQualified: true, Description: "Physical therapy and rehabilitation"},
	{Category: "mental_health", IsQualified: true, Description: "Mental health services and therapy"},
	{Category: "medical_equipment", IsQualified: true, Description: "Medical devices and equipment"},
	{Category: "health_insurance", IsQualified: true, Description: "Health insurance premiums"},
	{Category: "cosmetic_surgery", IsQualified: false, Description: "Cosmetic procedures not medically necessary"},
	{Category: "vitamins_supplements", IsQualified: false, Description: "Vitamins and supplements (unless prescribed)"},
	{Category: "gym_membership", IsQualified: false, Description: "Gym memberships and fitness programs"},
	{Category: "over_the_counter", IsQualified: false, Description: "Over-the-counter medications"},
	{Category: "restaurant_food", IsQualified: false, Description: "Restaurant meals and food purchases"},
	{Category: "clothing", IsQualified: false, Description: "Clothing and personal items"},
	{Category: "entertainment", IsQualified: false, Description: "Entertainment and recreational activities"},
}

var byCode = make(map[string]Category, len(categories))

func init() {
	for _, c := range categories {
		byCode[c.Category] = c
	}
}

// IsQualified reports whether a category code is an HSA-qualified medical
// expense. Unknown codes are not qualified.
func IsQualified(code string) bool {
	return byCode[code].IsQualified
}

// Describe returns the human-readable description for a category code.
func Describe(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Description
	}
	return "Unknown category"
}

// All returns the full category table in declaration order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
