package main

import (
	"math"
)

const (
	genderMale   = "male"
	genderFemale = "female"

	goalCut      = "cut"
	goalBulk     = "bulk"
	goalMaintain = "maintain"
)

// defaultActivityMultiplier applies to any activity level missing from
// activityMultipliers.
const defaultActivityMultiplier = 1.2

// activityMultipliers maps activity level strings to their TDEE multiplier.
// Also the source of truth for valid activity levels when a profile is saved.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// calorieOffsets is the daily surplus/deficit applied to TDEE per goal.
// Goals not listed (including maintain) get no offset.
var calorieOffsets = map[string]float64{
	goalCut:  -500,
	goalBulk: 400,
}

var validGenders = map[string]bool{
	genderMale:   true,
	genderFemale: true,
}

var validGoals = map[string]bool{
	goalCut:      true,
	goalBulk:     true,
	goalMaintain: true,
}

// BMI bracket upper bounds. Each check is strict (<), so a value equal to a
// bound belongs to the next bracket up.
const (
	bmiUnderweightBelow = 18.5
	bmiNormalBelow      = 25
	bmiOverweightBelow  = 30
)

// bmiCategory is a display label plus the colour the dashboard renders it in.
type bmiCategory struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// goalValidation is advisory: invalid means the goal is unsafe for the BMI,
// not that anything was rejected.
type goalValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// calculateBMI returns weight / height² with height converted to metres.
// No bounds checking: a zero height yields +Inf.
func calculateBMI(weightKG, heightCM float64) float64 {
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

// getBMICategory buckets a BMI value into Underweight/Normal/Overweight/Obese.
func getBMICategory(bmi float64) bmiCategory {
	switch {
	case bmi < bmiUnderweightBelow:
		return bmiCategory{Label: "Underweight", Color: "hsl(45, 80%, 55%)"}
	case bmi < bmiNormalBelow:
		return bmiCategory{Label: "Normal", Color: "hsl(152, 60%, 45%)"}
	case bmi < bmiOverweightBelow:
		return bmiCategory{Label: "Overweight", Color: "hsl(30, 80%, 55%)"}
	default:
		return bmiCategory{Label: "Obese", Color: "hsl(0, 72%, 51%)"}
	}
}

// calculateBMR computes basal metabolic rate via Mifflin-St Jeor. Anything
// other than "male" takes the female constant.
func calculateBMR(p profile) float64 {
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == genderMale {
		return bmr + 5
	}
	return bmr - 161
}

// activityMultiplier looks up the TDEE multiplier, falling back to
// defaultActivityMultiplier for unknown levels.
func activityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// calculateTDEE returns total daily energy expenditure: BMR scaled by the
// activity multiplier.
func calculateTDEE(p profile) float64 {
	return calculateBMR(p) * activityMultiplier(p.ActivityLevel)
}

// getCalorieTarget applies the goal offset to TDEE and rounds to the nearest
// calorie.
func getCalorieTarget(tdee float64, goal string) int {
	return int(math.Round(tdee + calorieOffsets[goal]))
}

// validateGoal flags goal/BMI combinations that are unsafe: bulking at an
// Obese BMI or cutting at an Underweight BMI.
func validateGoal(bmi float64, goal string) goalValidation {
	if goal == goalBulk && bmi >= bmiOverweightBelow {
		return goalValidation{
			Valid:   false,
			Message: "Bulking is not recommended at your current BMI (Obese). Consider maintaining or cutting first.",
		}
	}
	if goal == goalCut && bmi < bmiUnderweightBelow {
		return goalValidation{
			Valid:   false,
			Message: "Cutting is not recommended at your current BMI (Underweight). Consider maintaining or bulking first.",
		}
	}
	return goalValidation{Valid: true}
}

// summarizeHealth runs the whole pipeline for one profile: BMI, BMR, TDEE,
// calorie target, goal safety and macro split.
func summarizeHealth(p profile) healthSummary {
	bmi := calculateBMI(p.WeightKG, p.HeightCM)
	bmr := calculateBMR(p)
	tdee := calculateTDEE(p)
	target := getCalorieTarget(tdee, p.Goal)

	return healthSummary{
		Profile:        p,
		BMI:            math.Round(bmi*10) / 10,
		BMICategory:    getBMICategory(bmi),
		BMR:            int(math.Round(bmr)),
		TDEE:           int(math.Round(tdee)),
		CalorieTarget:  target,
		GoalValidation: validateGoal(bmi, p.Goal),
		Macros:         planMacros(p.WeightKG, p.Goal, target),
	}
}
