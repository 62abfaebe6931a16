// Package validate enforces the structural contract on caller constraints
// and LLM-produced recipe proposals. Parsing and validation happen in a
// single pass: every accepted object comes back with all defaults applied,
// and every rejected object comes back with the full list of violations.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kondate-app/backend/internal/types"
)

// DefaultGoal is used when the caller supplies no goals.
const DefaultGoal = "weekday dinner"

// DefaultLocale is used when the caller supplies no locale.
const DefaultLocale = "JP"

// Issue describes a single violated field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error carries every violation found in one validation pass.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path == "" {
			parts[i] = issue.Message
			continue
		}
		parts[i] = issue.Path + ": " + issue.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Report violations against JSON field names, not Go field names.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// Constraints parses raw JSON into RequestConstraints. All fields are
// optional; omitted fields receive their documented defaults. An explicit
// invalid value (servings: 0, unknown budget level) is rejected.
func Constraints(data []byte) (*types.RequestConstraints, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}

	var raw struct {
		ExcludeIngredients []string           `json:"exclude_ingredients"`
		AvailableTools     []string           `json:"available_tools"`
		Servings           *int               `json:"servings"`
		Goals              []string           `json:"goals"`
		BudgetLevel        *types.BudgetLevel `json:"budget_level"`
		Locale             *string            `json:"locale"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeError(err)
	}

	c := &types.RequestConstraints{
		ExcludeIngredients: emptyIfNil(raw.ExcludeIngredients),
		AvailableTools:     emptyIfNil(raw.AvailableTools),
		Servings:           1,
		Goals:              raw.Goals,
		BudgetLevel:        types.BudgetLow,
		Locale:             DefaultLocale,
	}
	if raw.Servings != nil {
		c.Servings = *raw.Servings
	}
	if len(c.Goals) == 0 {
		c.Goals = []string{DefaultGoal}
	}
	if raw.BudgetLevel != nil {
		c.BudgetLevel = *raw.BudgetLevel
	}
	if raw.Locale != nil {
		c.Locale = *raw.Locale
	}

	if err := v.Struct(c); err != nil {
		return nil, collect(err)
	}
	return c, nil
}

// Proposal parses raw LLM output into a RecipeProposal. Malformed JSON and
// schema violations are reported the same way: both mean the attempt failed.
func Proposal(data []byte) (*types.RecipeProposal, error) {
	var p types.RecipeProposal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, decodeError(err)
	}

	p.Tools = emptyIfNil(p.Tools)
	p.Notes = emptyIfNil(p.Notes)
	if p.ShoppingList == nil {
		p.ShoppingList = []types.ShoppingItem{}
	}

	if err := v.Struct(&p); err != nil {
		return nil, collect(err)
	}
	return &p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func decodeError(err error) *Error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return &Error{Issues: []Issue{{
			Path:    ute.Field,
			Message: fmt.Sprintf("expected %s", ute.Type),
		}}}
	}
	return &Error{Issues: []Issue{{Message: "invalid JSON: " + err.Error()}}}
}

// collect converts validator errors into one Issue per violated field.
func collect(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Issues: []Issue{{Message: err.Error()}}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Path: fieldPath(fe), Message: describe(fe)})
	}
	return &Error{Issues: issues}
}

// fieldPath strips the root struct name from the namespace, leaving the
// JSON path, e.g. "ingredients[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		return fmt.Sprintf("must contain at least %s items", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
