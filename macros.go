package main

import "math"

const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// macroRatio holds the goal-dependent inputs of the macro split.
type macroRatio struct {
	ProteinPerKG    float64 // grams of protein per kg body weight
	FatCalorieShare float64 // fraction of the calorie target taken by fat
}

// macroRatios is keyed by goal. Unknown goals use defaultMacroRatio.
var macroRatios = map[string]macroRatio{
	goalCut:      {ProteinPerKG: 2.2, FatCalorieShare: 0.25},
	goalBulk:     {ProteinPerKG: 1.8, FatCalorieShare: 0.25},
	goalMaintain: {ProteinPerKG: 2.0, FatCalorieShare: 0.30},
}

var defaultMacroRatio = macroRatios[goalMaintain]

// macroPlan is the daily macronutrient split for one calorie target.
// Percentages always sum to 100. OverAllocated is set when protein and fat
// alone exceed the target, in which case carbs are negative.
type macroPlan struct {
	CalorieTarget int     `json:"calorie_target"`
	ProteinG      float64 `json:"protein_g"`
	FatG          float64 `json:"fat_g"`
	CarbsG        float64 `json:"carbs_g"`
	ProteinPct    int     `json:"protein_pct"`
	FatPct        int     `json:"fat_pct"`
	CarbsPct      int     `json:"carbs_pct"`
	OverAllocated bool    `json:"over_allocated"`
}

func macroRatioFor(goal string) macroRatio {
	if r, ok := macroRatios[goal]; ok {
		return r
	}
	return defaultMacroRatio
}

// planMacros splits calorieTarget into protein, fat and carbs. Protein is
// fixed per kg of body weight, fat is a share of the target and carbs take
// whatever is left. Carb percent is derived from the other two rather than
// rounded on its own so the three percentages add up to exactly 100.
func planMacros(weightKG float64, goal string, calorieTarget int) macroPlan {
	ratio := macroRatioFor(goal)
	target := float64(calorieTarget)

	proteinG := weightKG * ratio.ProteinPerKG
	fatG := ratio.FatCalorieShare * target / caloriesPerGramFat

	proteinCal := proteinG * caloriesPerGramProtein
	fatCal := fatG * caloriesPerGramFat
	carbCal := target - (proteinCal + fatCal)
	carbsG := carbCal / caloriesPerGramCarbs

	plan := macroPlan{
		CalorieTarget: calorieTarget,
		ProteinG:      roundTo(proteinG, 1),
		FatG:          roundTo(fatG, 1),
		CarbsG:        roundTo(carbsG, 1),
		OverAllocated: carbCal < 0,
	}
	if calorieTarget <= 0 {
		return plan
	}

	plan.ProteinPct = int(math.Round(proteinCal / target * 100))
	plan.FatPct = int(math.Round(fatCal / target * 100))
	plan.CarbsPct = 100 - plan.ProteinPct - plan.FatPct
	return plan
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
