package mapping

import (
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/models"
)

// ToMatchColumns spreads match entries over the flat match columns.
// An entry without explicit fields lands in every field of its category.
// Values are appended as given; repeated entries produce repeated column values.
func ToMatchColumns(entries []domain.MatchEntry) models.MatchColumns {
	cols := make(models.MatchColumns)
	for _, e := range entries {
		targets := e.Fields
		if len(targets) == 0 {
			targets = e.Category.Fields()
		}
		for _, f := range targets {
			cols[f] = append(cols[f], e.Value)
		}
	}
	return cols
}

// ToMatchEntries rebuilds match entries from the flat columns.
//
// Entries come out grouped by category in category order, and within a
// category by first appearance of the value while scanning fields in order.
// A value found in every field of its category decodes without explicit
// fields. The gate is not stored, so every entry carries domain.DefaultGate.
func ToMatchEntries(cols models.MatchColumns) []domain.MatchEntry {
	entries := []domain.MatchEntry{}
	for _, category := range domain.MatchCategories {
		all := category.Fields()

		var order []string
		found := make(map[string][]domain.MatchField)
		for _, f := range all {
			for _, v := range cols[f] {
				if v == "" {
					continue
				}
				fields, seen := found[v]
				if !seen {
					order = append(order, v)
				}
				if !containsField(fields, f) {
					found[v] = append(fields, f)
				}
			}
		}

		for _, v := range order {
			entry := domain.MatchEntry{Category: category, Value: v, Gate: domain.DefaultGate}
			if fields := found[v]; len(fields) != len(all) {
				entry.Fields = fields
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// NormalizeMatches returns matches as they read back after being stored.
func NormalizeMatches(entries []domain.MatchEntry) []domain.MatchEntry {
	return ToMatchEntries(ToMatchColumns(entries))
}

// FlattenCategory concatenates the category's columns in field order, dropping empty values.
// Duplicates across columns are kept.
func FlattenCategory(cols models.MatchColumns, category domain.MatchCategory) []string {
	out := []string{}
	for _, f := range category.Fields() {
		for _, v := range cols[f] {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func containsField(fields []domain.MatchField, f domain.MatchField) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}
