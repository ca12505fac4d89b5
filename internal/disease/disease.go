// Package disease answers basic health questions from a compiled-in table.
package disease

import (
	"fmt"
	"strings"
)

// Record holds the canned facts for one condition.
type Record struct {
	Keyword   string
	Name      string
	Symptoms  string
	Cause     string
	Treatment string
	Severity  string
}

// Table lists the known conditions. Order is significant: lookups return the
// first keyword contained in the utterance, so e.g. "fever and headache"
// answers for fever.
var Table = []Record{
	{
		Keyword:   "cold",
		Name:      "Common Cold",
		Symptoms:  "Runny nose, sore throat, cough, congestion, slight body aches.",
		Cause:     "Caused by a viral infection (usually rhinovirus).",
		Treatment: "Rest, hydration, and over-the-counter cold medications.",
		Severity:  "Mild",
	},
	{
		Keyword:   "fever",
		Name:      "Fever",
		Symptoms:  "High body temperature, chills, sweating, headache, body aches.",
		Cause:     "Usually due to an infection (bacterial or viral).",
		Treatment: "Stay hydrated, take paracetamol or ibuprofen, and rest.",
		Severity:  "Mild to Moderate",
	},
	{
		Keyword:   "covid",
		Name:      "COVID-19",
		Symptoms:  "Fever, cough, fatigue, shortness of breath, loss of taste or smell.",
		Cause:     "Caused by SARS-CoV-2 virus, spreads through droplets.",
		Treatment: "Isolation, monitoring symptoms, and seeking medical help if needed.",
		Severity:  "Varies from Mild to Severe",
	},
	{
		Keyword:   "malaria",
		Name:      "Malaria",
		Symptoms:  "Fever, chills, vomiting, headache, muscle pain.",
		Cause:     "Spread by Anopheles mosquitoes carrying Plasmodium parasite.",
		Treatment: "Antimalarial medications prescribed by doctors.",
		Severity:  "Moderate to Severe",
	},
	{
		Keyword:   "diabetes",
		Name:      "Diabetes",
		Symptoms:  "Increased thirst, frequent urination, fatigue, blurred vision.",
		Cause:     "High blood sugar due to insulin issues (Type 1 or 2).",
		Treatment: "Managed with medication, insulin, diet control, and exercise.",
		Severity:  "Chronic",
	},
	{
		Keyword:   "hypertension",
		Name:      "Hypertension",
		Symptoms:  "Often silent, may include headache, shortness of breath, or nosebleeds.",
		Cause:     "High pressure in the arteries. Risk factor for heart disease.",
		Treatment: "Lifestyle changes and antihypertensive drugs.",
		Severity:  "Chronic",
	},
	{
		Keyword:   "headache",
		Name:      "Headache",
		Symptoms:  "Pain in head, scalp, or neck. Can be dull or sharp.",
		Cause:     "Stress, dehydration, sinus issues, eye strain, or more serious causes.",
		Treatment: "Rest, hydration, and over-the-counter pain relievers.",
		Severity:  "Mild to Moderate",
	},
}

// Lookup returns the rendered record for the first table keyword contained
// in the utterance.
func Lookup(message string) (string, bool) {
	msg := strings.ToLower(message)
	for _, r := range Table {
		if strings.Contains(msg, r.Keyword) {
			return render(r), true
		}
	}
	return "", false
}

func render(r Record) string {
	return fmt.Sprintf(
		"🩺 *%s*\n- **Symptoms**: %s\n- **Cause**: %s\n- **Treatment**: %s\n- **Severity**: %s",
		r.Name, r.Symptoms, r.Cause, r.Treatment, r.Severity,
	)
}
