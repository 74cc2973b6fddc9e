package profit

import (
	"strings"

	"phone_hunter/internal/domain/entity"
)

// brandToken is stripped from catalog model names before matching, so that
// variant phrasings ("11 pro 256gb super stan") still hit "iphone 11 pro".
const brandToken = "iphone"

// polishFolder maps Polish diacritics to their ASCII base letters. Sellers
// spell damage words every way imaginable ("pęknięty", "pekniety",
// "pękniety"), so both the text and the keyword tables are folded before
// matching instead of enumerating misspelling variants.
var polishFolder = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n",
	"ó", "o", "ś", "s", "ź", "z", "ż", "z",
)

func foldDiacritics(text string) string {
	return polishFolder.Replace(text)
}

// conditionRules is the single consolidated keyword table for condition
// detection. Ordered by precedence: a listing can mention several conditions,
// and the worst applicable one decides the pricing tier. First match wins.
// Keywords are written in natural Polish; matching is diacritic-folded.
var conditionRules = []struct {
	condition entity.Condition
	keywords  []string
}{
	{entity.ConditionLocked, []string{
		"icloud", "zablokowany", "locked", "activation lock",
	}},
	{entity.ConditionParts, []string{
		"na części", "parts", "uszkodzony nie włącza",
	}},
	{entity.ConditionBroken, []string{
		"uszkodzony", "pęknięty", "rozbity", "broken", "cracked",
		"zbity", "damaged", "nie działa", "nie włącza",
	}},
}

// damageRules are independent, not mutually exclusive classes. Purely
// informational: they feed the recommendation text and the pairwise matcher's
// combination label.
var damageRules = []struct {
	damage   string
	keywords []string
}{
	{entity.DamageScreen, []string{"ekran", "wyświetlacz", "screen", "display"}},
	{entity.DamageHousing, []string{"obudowa", "tył", "plecki", "back", "housing"}},
	{entity.DamageBattery, []string{"bateria", "battery", "akumulator"}},
	{entity.DamageCamera, []string{"aparat", "camera", "kamera"}},
	{entity.DamageBiometric, []string{"face id", "faceid", "touch id"}},
}

// DetectModel matches the text against the enabled model list. Each candidate
// is matched by its name with the brand token stripped; the first enabled
// model whose token appears in the text wins. No match means the listing is
// unscoreable; the caller skips it, it is not a failure.
func DetectModel(text string, enabledModels []string) (string, bool) {
	lower := strings.ToLower(text)

	for _, model := range enabledModels {
		token := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(model), brandToken, ""))
		if token == "" {
			continue
		}

		if strings.Contains(lower, token) {
			return model, true
		}
	}

	return "", false
}

// DetectCondition classifies the concatenated title and description.
// Precedence: locked > parts > broken > working (default).
func DetectCondition(title, description string) entity.Condition {
	text := foldDiacritics(strings.ToLower(title + " " + description))

	for _, rule := range conditionRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, foldDiacritics(keyword)) {
				return rule.condition
			}
		}
	}

	return entity.ConditionWorking
}

// DetectDamages extracts all mentioned damage classes from the text.
func DetectDamages(title, description string) []string {
	text := foldDiacritics(strings.ToLower(title + " " + description))

	var damages []string

	for _, rule := range damageRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, foldDiacritics(keyword)) {
				damages = append(damages, rule.damage)
				break
			}
		}
	}

	return damages
}

func hasDamage(damages []string, damage string) bool {
	for _, d := range damages {
		if d == damage {
			return true
		}
	}
	return false
}
