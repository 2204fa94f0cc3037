package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/models"
)

// ToModelRule converts a domain Rule to a model Rule, encoding its matches into columns.
func ToModelRule(d domain.Rule) models.Rule {
	names, types, data := splitAttachments(d.Attachments)
	return models.Rule{
		ID:               d.ID,
		Type:             string(d.Type),
		Status:           string(d.Status),
		Matches:          ToMatchColumns(d.Matches),
		MatchAmountMin:   d.MatchAmountMin,
		MatchAmountMax:   d.MatchAmountMax,
		PrimaryAccount:   d.PrimaryAccount,
		SecondaryAccount: d.SecondaryAccount,
		TertiaryAccount:  d.TertiaryAccount,
		Text:             d.Text,
		CprType:          string(d.CprType),
		CprNumber:        d.CprNumber,
		NotifyTo:         d.NotifyTo,
		Note:             d.Note,
		AttachmentNames:  names,
		AttachmentTypes:  types,
		AttachmentData:   data,
		LastUsed:         d.LastUsed,
		CurrentVersionID: d.CurrentVersionID,
		LockedAt:         d.LockedAt,
		LockedBy:         d.LockedBy,
		BankAccountIDs:   d.RelatedBankAccounts,
		RuleTagIDs:       d.RuleTags,
		AuditFields:      models.AuditFields(d.AuditFields),
	}
}

// ToDomainRule converts a model Rule to a domain Rule, decoding its match columns.
func ToDomainRule(m models.Rule) domain.Rule {
	return domain.Rule{
		ID:                  m.ID,
		Type:                domain.RuleType(m.Type),
		Status:              domain.RuleStatus(m.Status),
		RelatedBankAccounts: nonNil(m.BankAccountIDs),
		Matches:             ToMatchEntries(m.Matches),
		MatchAmountMin:      m.MatchAmountMin,
		MatchAmountMax:      m.MatchAmountMax,
		PrimaryAccount:      m.PrimaryAccount,
		SecondaryAccount:    m.SecondaryAccount,
		TertiaryAccount:     m.TertiaryAccount,
		Text:                m.Text,
		CprType:             domain.CprType(m.CprType),
		CprNumber:           m.CprNumber,
		NotifyTo:            m.NotifyTo,
		Note:                m.Note,
		Attachments:         zipAttachments(m.AttachmentNames, m.AttachmentTypes, m.AttachmentData),
		RuleTags:            nonNil(m.RuleTagIDs),
		LastUsed:            m.LastUsed,
		CurrentVersionID:    m.CurrentVersionID,
		LockedAt:            m.LockedAt,
		LockedBy:            m.LockedBy,
		AuditFields:         domain.AuditFields(m.AuditFields),
	}
}

// ToModelRuleVersion serializes a snapshot for the rule_version table.
func ToModelRuleVersion(d domain.RuleVersion) (models.RuleVersion, error) {
	content, err := json.Marshal(d.Content)
	if err != nil {
		return models.RuleVersion{}, fmt.Errorf("marshal rule %d version %d: %w", d.RuleID, d.Version, err)
	}
	return models.RuleVersion{
		RuleID:    d.RuleID,
		Version:   d.Version,
		Content:   content,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}, nil
}

// ToDomainRuleVersion parses a stored snapshot.
func ToDomainRuleVersion(m models.RuleVersion) (domain.RuleVersion, error) {
	var content domain.Rule
	if err := json.Unmarshal(m.Content, &content); err != nil {
		return domain.RuleVersion{}, fmt.Errorf("unmarshal rule %d version %d: %w", m.RuleID, m.Version, err)
	}
	return domain.RuleVersion{
		RuleID:    m.RuleID,
		Version:   m.Version,
		Content:   content,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}, nil
}

func splitAttachments(atts []domain.Attachment) (names, types, data []string) {
	if len(atts) == 0 {
		return nil, nil, nil
	}
	names = make([]string, len(atts))
	types = make([]string, len(atts))
	data = make([]string, len(atts))
	for i, a := range atts {
		names[i], types[i], data[i] = a.Name, a.Type, a.Data
	}
	return names, types, data
}

// zipAttachments stops at the shortest array; rows written elsewhere may be ragged.
func zipAttachments(names, types, data []string) []domain.Attachment {
	n := min(len(names), len(types), len(data))
	if n == 0 {
		return nil
	}
	atts := make([]domain.Attachment, n)
	for i := 0; i < n; i++ {
		atts[i] = domain.Attachment{Name: names[i], Type: types[i], Data: data[i]}
	}
	return atts
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
