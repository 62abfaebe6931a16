package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kondate-app/backend/internal/types"
)

// PromptPair is the exact system/user message pair sent to the generator.
type PromptPair struct {
	System string
	User   string
}

// baseInstructions is the fixed, ordered behavioral instruction set. The
// recent-titles block is only ever appended after it, never interleaved.
var baseInstructions = []string{
	"You are a dinner recipe assistant for busy people living alone.",
	"Respond with strict JSON only. No code fences, no markdown, no commentary.",
	"Write all recipe text in the language of the given locale (JP means Japanese).",
	"Keep the description under 200 characters.",
	"Never use any of the excluded ingredients, neither in ingredients nor in shopping_list.",
	"Keep cook time within 30 minutes when possible and never above 45 minutes.",
	"Scale every quantity to the requested number of servings.",
	"Tag every shopping_list item with a category: meat, fish, vegetable, seasoning or other.",
	"Vary the cuisine across proposals rather than repeating the same style.",
}

// outputSchema documents the expected response shape for the generator. It
// is prompt material only; real enforcement happens in internal/validate.
var outputSchema = map[string]interface{}{
	"title":         "string",
	"description":   "string",
	"cook_time_min": "number",
	"ingredients":   []map[string]string{{"name": "string", "qty": "number", "unit": "string", "optional": "boolean?"}},
	"steps":         []string{"string"},
	"tools":         []string{"string"},
	"shopping_list": []map[string]string{{"name": "string", "qty": "number", "unit": "string", "category": "meat|fish|vegetable|seasoning|other"}},
	"notes":         []string{"string"},
}

// BuildPrompt assembles the message pair for one generation attempt.
func BuildPrompt(constraints *types.RequestConstraints, recentTitles []string) (PromptPair, error) {
	system := strings.Join(baseInstructions, "\n")

	if len(recentTitles) > 0 {
		var b strings.Builder
		b.WriteString(system)
		b.WriteString("\nThe user was recently proposed these dishes:\n")
		for i, title := range recentTitles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, title)
		}
		b.WriteString("Do not propose these dishes again or anything highly similar to them.")
		system = b.String()
	}

	payload := struct {
		*types.RequestConstraints
		OutputSchema map[string]interface{} `json:"output_schema"`
	}{
		RequestConstraints: constraints,
		OutputSchema:       outputSchema,
	}
	user, err := json.Marshal(payload)
	if err != nil {
		return PromptPair{}, fmt.Errorf("failed to marshal constraints: %w", err)
	}

	return PromptPair{System: system, User: string(user)}, nil
}

// Reinforce strengthens a system message for the retry attempt after the
// first completion failed validation.
func Reinforce(system string) string {
	return system + "\nYour previous output was invalid. Return only valid JSON matching the output_schema exactly: no undefined, no NaN, no trailing commas, no comments."
}
