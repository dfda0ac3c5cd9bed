package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
)

// MatchChoice returns the accepted choice equal to value after trimming and
// case folding. An empty value matches defaultChoice.
func MatchChoice(value string, defaultChoice string, choices []string) (string, bool) {
	normalizedValue := normalizeChoice(value)
	if len(normalizedValue) == 0 {
		normalizedValue = normalizeChoice(defaultChoice)
	}
	for _, choice := range choices {
		normalizedChoice := normalizeChoice(choice)
		if len(normalizedChoice) > 0 && normalizedChoice == normalizedValue {
			return normalizedChoice, true
		}
	}
	return "", false
}

// FormatChoiceUsage renders the accepted choices as `<AUTO|always|never>` followed by the description.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := normalizeChoice(defaultChoice)
	displayed := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		normalizedChoice := normalizeChoice(choice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			displayed = append(displayed, strings.ToUpper(normalizedChoice))
			continue
		}
		displayed = append(displayed, normalizedChoice)
	}

	placeholder := choicePlaceholderPrefix + strings.Join(displayed, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

func normalizeChoice(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
