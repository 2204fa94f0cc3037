package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/go-playground/validator/v10"
)

// requestValidator checks request structs against their validate tags and
// reports failures with the JSON field paths the client sent.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &requestValidator{v: v}
}

// check runs struct validation and collects every failure into verr.
func (rv *requestValidator) check(req any, verr *apperrors.ValidationError) error {
	err := rv.v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewAppError(500, "failed to validate request", err)
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe.Namespace()), tagMessage(fe))
	}
	return nil
}

// fieldPath drops the struct type name validator puts in front of the namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return "must not be empty"
		}
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "email":
		return "must be a valid e-mail address"
	case "base64":
		return "must be base64 encoded"
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

// ruleDraftRules are the cross-field checks a rule draft needs beyond its tags.
type ruleDraftRules struct {
	notifyDomain     string
	singleCostObject bool
}

func (r ruleDraftRules) check(req dto.RuleDraftRequest, verr *apperrors.ValidationError) {
	if req.MatchAmountMin != nil && req.MatchAmountMax != nil && req.MatchAmountMin.GreaterThan(*req.MatchAmountMax) {
		verr.Add("matchAmountMin", "must not be greater than matchAmountMax")
	}

	if domain.CprType(req.AccountingCprType) == domain.CprStatic && isBlank(req.AccountingCprNumber) {
		verr.Add("accountingCprNumber", "is required when accountingCprType is static")
	}

	if r.notifyDomain != "" && !isBlank(req.AccountingNotifyTo) &&
		!strings.HasSuffix(strings.ToLower(strings.TrimSpace(*req.AccountingNotifyTo)), "@"+strings.ToLower(r.notifyDomain)) {
		verr.Addf("accountingNotifyTo", "must be an address at %s", r.notifyDomain)
	}

	if r.singleCostObject && strings.TrimSpace(req.AccountingPrimaryAccount) != "" &&
		isBlank(req.AccountingSecondaryAccount) == isBlank(req.AccountingTertiaryAccount) {
		verr.Add("accountingSecondaryAccount", "exactly one of accountingSecondaryAccount and accountingTertiaryAccount must be set")
	}

	for i, m := range req.Matches {
		category, ok := domain.ParseMatchCategory(m.Category)
		if !ok {
			if m.Category != "" {
				verr.Addf(fmt.Sprintf("matches[%d].category", i), "unknown category %q", m.Category)
			}
			continue
		}
		if strings.TrimSpace(m.Value) == "" && m.Value != "" {
			verr.Add(fmt.Sprintf("matches[%d].value", i), "must not be blank")
		}
		for j, f := range m.Fields {
			if !category.Contains(parseMatchField(f)) {
				verr.Addf(fmt.Sprintf("matches[%d].fields[%d]", i, j), "%q is not a %s field", f, category)
			}
		}
	}
}

// parseMatchField accepts a column name with or without its match_ prefix.
func parseMatchField(name string) domain.MatchField {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "match_") {
		name = "match_" + name
	}
	return domain.MatchField(name)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
