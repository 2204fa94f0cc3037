package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_rules_app/internal/models"
	"github.com/SscSPs/bank_rules_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

// newPgxRuleRepository creates a new repository for rules, their relations and versions.
func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepositoryWithTx {
	return &PgxRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRuleRepository implements portsrepo.RuleRepositoryWithTx
var _ portsrepo.RuleRepositoryWithTx = (*PgxRuleRepository)(nil)

// ruleWriteColumns are written by create and update, in ruleWriteArgs order.
var ruleWriteColumns = append([]string{
	"type", "status", "match_amount_min", "match_amount_max",
	"accounting_primary_account", "accounting_secondary_account", "accounting_tertiary_account",
	"accounting_text", "accounting_cpr_type", "accounting_cpr_number", "accounting_notify_to", "accounting_note",
	"accounting_attachment_names", "accounting_attachment_types", "accounting_attachment_data",
}, matchColumnNames("")...)

func ruleWriteArgs(m models.Rule) []any {
	args := []any{
		m.Type, m.Status, m.MatchAmountMin, m.MatchAmountMax,
		m.PrimaryAccount, m.SecondaryAccount, m.TertiaryAccount,
		m.Text, m.CprType, m.CprNumber, m.NotifyTo, m.Note,
		m.AttachmentNames, m.AttachmentTypes, m.AttachmentData,
	}
	for _, f := range domain.AllMatchFields() {
		args = append(args, m.Matches[f])
	}
	return args
}

func matchColumnNames(prefix string) []string {
	fields := domain.AllMatchFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = prefix + string(f)
	}
	return names
}

var ruleSelectQuery = `
	SELECT r.id, r.type, r.status, r.match_amount_min, r.match_amount_max,
	       r.accounting_primary_account, r.accounting_secondary_account, r.accounting_tertiary_account,
	       r.accounting_text, r.accounting_cpr_type, r.accounting_cpr_number, r.accounting_notify_to, r.accounting_note,
	       r.accounting_attachment_names, r.accounting_attachment_types, r.accounting_attachment_data,
	       r.last_used, r.current_version_id, r.locked_at, r.locked_by,
	       r.created_at, r.created_by, r.updated_at, r.updated_by,
	       ` + strings.Join(matchColumnNames("r."), ", ") + `,
	       COALESCE((SELECT array_agg(rba.bank_account_id ORDER BY rba.bank_account_id)
	                 FROM rule_bank_account rba WHERE rba.rule_id = r.id), '{}'),
	       COALESCE((SELECT array_agg(rrt.rule_tag_id ORDER BY rrt.rule_tag_id)
	                 FROM rule_rule_tag rrt WHERE rrt.rule_id = r.id), '{}')
	FROM rule r
	WHERE r.id = $1`

var ruleListQuery = `
	SELECT r.id, r.type, r.status, r.match_amount_min, r.match_amount_max,
	       r.accounting_primary_account, r.accounting_secondary_account, r.accounting_tertiary_account,
	       r.accounting_text, r.last_used, r.current_version_id, r.locked_at, r.updated_at,
	       ` + strings.Join(matchColumnNames("r."), ", ") + `,
	       COALESCE((SELECT json_agg(json_build_object('ruleId', rba.rule_id, 'bankAccountId', rba.bank_account_id))
	                 FROM rule_bank_account rba WHERE rba.rule_id = r.id), '[]'::json),
	       COALESCE((SELECT json_agg(json_build_object('ruleId', rrt.rule_id, 'ruleTagId', rrt.rule_tag_id))
	                 FROM rule_rule_tag rrt WHERE rrt.rule_id = r.id), '[]'::json)
	FROM rule r
	ORDER BY r.updated_at DESC, r.id DESC`

func scanRule(row pgx.Row) (models.Rule, error) {
	var m models.Rule
	fields := domain.AllMatchFields()
	matchVals := make([][]string, len(fields))

	dest := []any{
		&m.ID, &m.Type, &m.Status, &m.MatchAmountMin, &m.MatchAmountMax,
		&m.PrimaryAccount, &m.SecondaryAccount, &m.TertiaryAccount,
		&m.Text, &m.CprType, &m.CprNumber, &m.NotifyTo, &m.Note,
		&m.AttachmentNames, &m.AttachmentTypes, &m.AttachmentData,
		&m.LastUsed, &m.CurrentVersionID, &m.LockedAt, &m.LockedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	}
	for i := range matchVals {
		dest = append(dest, &matchVals[i])
	}
	dest = append(dest, &m.BankAccountIDs, &m.RuleTagIDs)

	if err := row.Scan(dest...); err != nil {
		return models.Rule{}, err
	}
	m.Matches = toMatchColumns(fields, matchVals)
	return m, nil
}

func scanRuleListRow(rows pgx.Rows) (models.RuleListRow, error) {
	var m models.RuleListRow
	var bankAccounts, ruleTags []byte
	fields := domain.AllMatchFields()
	matchVals := make([][]string, len(fields))

	dest := []any{
		&m.ID, &m.Type, &m.Status, &m.MatchAmountMin, &m.MatchAmountMax,
		&m.PrimaryAccount, &m.SecondaryAccount, &m.TertiaryAccount,
		&m.Text, &m.LastUsed, &m.CurrentVersionID, &m.LockedAt, &m.UpdatedAt,
	}
	for i := range matchVals {
		dest = append(dest, &matchVals[i])
	}
	dest = append(dest, &bankAccounts, &ruleTags)

	if err := rows.Scan(dest...); err != nil {
		return models.RuleListRow{}, err
	}
	if err := json.Unmarshal(bankAccounts, &m.BankAccounts); err != nil {
		return models.RuleListRow{}, fmt.Errorf("rule %d bank accounts: %w", m.ID, err)
	}
	if err := json.Unmarshal(ruleTags, &m.RuleTags); err != nil {
		return models.RuleListRow{}, fmt.Errorf("rule %d tags: %w", m.ID, err)
	}
	m.Matches = toMatchColumns(fields, matchVals)
	return m, nil
}

func toMatchColumns(fields []domain.MatchField, vals [][]string) models.MatchColumns {
	cols := make(models.MatchColumns, len(fields))
	for i, f := range fields {
		if len(vals[i]) > 0 {
			cols[f] = vals[i]
		}
	}
	return cols
}

// FindRuleByID retrieves a rule with its relation ids.
func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID int64) (*domain.Rule, error) {
	m, err := scanRule(r.Pool.QueryRow(ctx, ruleSelectQuery, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", ruleID))
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find rule %d", ruleID), err)
	}
	rule := mapping.ToDomainRule(m)
	return &rule, nil
}

// ListRules retrieves the rule overview rows with relation objects aggregated as JSON.
func (r *PgxRuleRepository) ListRules(ctx context.Context) ([]models.RuleListRow, error) {
	rows, err := r.Pool.Query(ctx, ruleListQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rules", err)
	}
	defer rows.Close()

	list := []models.RuleListRow{}
	for rows.Next() {
		row, err := scanRuleListRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rule row", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rule rows", err)
	}
	return list, nil
}

// ListRuleVersions retrieves every snapshot of a rule, oldest first.
func (r *PgxRuleRepository) ListRuleVersions(ctx context.Context, ruleID int64) ([]domain.RuleVersion, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT rule_id, version, content, created_at, created_by
		FROM rule_version
		WHERE rule_id = $1
		ORDER BY version`, ruleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query versions of rule %d", ruleID), err)
	}
	defer rows.Close()

	versions := []domain.RuleVersion{}
	for rows.Next() {
		var m models.RuleVersion
		if err := rows.Scan(&m.RuleID, &m.Version, &m.Content, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rule version", err)
		}
		v, err := mapping.ToDomainRuleVersion(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode rule version", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rule versions", err)
	}

	// every stored rule has at least its first version
	if len(versions) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", ruleID))
	}
	return versions, nil
}

// CreateRule inserts the rule, its relations and the first version snapshot in one transaction.
func (r *PgxRuleRepository) CreateRule(ctx context.Context, rule domain.Rule) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	rule.CurrentVersionID = 1
	m := mapping.ToModelRule(rule)

	columns := append(append([]string{}, ruleWriteColumns...),
		"current_version_id", "created_at", "created_by", "updated_at", "updated_by")
	args := append(ruleWriteArgs(m),
		m.CurrentVersionID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)

	query := fmt.Sprintf("INSERT INTO rule (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "), strings.Join(placeholders(1, len(args)), ", "))

	if err := tx.QueryRow(ctx, query, args...).Scan(&rule.ID); err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert rule", err)
	}

	if err := insertRelations(ctx, tx, rule); err != nil {
		return 0, err
	}
	if err := insertVersion(ctx, tx, rule, rule.CreatedBy, rule.CreatedAt); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return rule.ID, nil
}

// UpdateRule stores the next version of a rule in one transaction. The actor is
// rule.LastUpdatedBy; the row lock taken here serializes concurrent updates so
// version numbers stay gapless.
func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.Rule, now time.Time, ttl time.Duration) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var existing domain.Rule
	err = tx.QueryRow(ctx, `
		SELECT current_version_id, locked_at, locked_by, last_used, created_at, created_by
		FROM rule
		WHERE id = $1
		FOR UPDATE`, rule.ID).Scan(
		&existing.CurrentVersionID, &existing.LockedAt, &existing.LockedBy,
		&existing.LastUsed, &existing.CreatedAt, &existing.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("rule %d not found", rule.ID))
		}
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to lock rule %d", rule.ID), err)
	}

	if existing.LockedByOther(rule.LastUpdatedBy, now, ttl) {
		return 0, apperrors.NewConflictError("locked by another actor")
	}

	rule.CurrentVersionID = existing.CurrentVersionID + 1
	rule.LastUsed = existing.LastUsed
	rule.CreatedAt = existing.CreatedAt
	rule.CreatedBy = existing.CreatedBy
	rule.LockedAt, rule.LockedBy = nil, nil
	m := mapping.ToModelRule(rule)

	columns := append(append([]string{}, ruleWriteColumns...), "current_version_id", "updated_at", "updated_by")
	args := append(ruleWriteArgs(m), m.CurrentVersionID, m.LastUpdatedAt, m.LastUpdatedBy)
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, rule.ID)
	query := fmt.Sprintf("UPDATE rule SET %s, locked_at = NULL, locked_by = NULL WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to update rule %d", rule.ID), err)
	}

	// relations are replaced wholesale; history lives in the snapshots
	if _, err := tx.Exec(ctx, `DELETE FROM rule_bank_account WHERE rule_id = $1`, rule.ID); err != nil {
		return 0, apperrors.NewAppError(500, "failed to clear rule bank accounts", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rule_rule_tag WHERE rule_id = $1`, rule.ID); err != nil {
		return 0, apperrors.NewAppError(500, "failed to clear rule tags", err)
	}
	if err := insertRelations(ctx, tx, rule); err != nil {
		return 0, err
	}
	if err := insertVersion(ctx, tx, rule, rule.LastUpdatedBy, rule.LastUpdatedAt); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return rule.CurrentVersionID, nil
}

// AcquireRuleLock takes the edit lease with a single conditional update.
func (r *PgxRuleRepository) AcquireRuleLock(ctx context.Context, ruleID int64, expectedVersion int, actor string, now time.Time, ttl time.Duration) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE rule
		SET locked_at = $3, locked_by = $4
		WHERE id = $1
		  AND current_version_id = $2
		  AND (locked_at IS NULL OR locked_at <= $5 OR locked_by = $4)`,
		ruleID, expectedVersion, now, actor, domain.LeaseCutoff(now, ttl))
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to lock rule %d", ruleID), err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseRuleLock clears the lease when actor holds it.
func (r *PgxRuleRepository) ReleaseRuleLock(ctx context.Context, ruleID int64, actor string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE rule
		SET locked_at = NULL, locked_by = NULL
		WHERE id = $1 AND locked_by = $2`, ruleID, actor)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to unlock rule %d", ruleID), err)
	}
	return tag.RowsAffected() == 1, nil
}

func insertRelations(ctx context.Context, tx pgx.Tx, rule domain.Rule) error {
	batch := &pgx.Batch{}
	for _, id := range rule.RelatedBankAccounts {
		batch.Queue(`INSERT INTO rule_bank_account (rule_id, bank_account_id) VALUES ($1, $2)`, rule.ID, id)
	}
	for _, id := range rule.RuleTags {
		batch.Queue(`INSERT INTO rule_rule_tag (rule_id, rule_tag_id) VALUES ($1, $2)`, rule.ID, id)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			field, what := "relatedBankAccounts", "unknown bank account"
			if i >= len(rule.RelatedBankAccounts) {
				field, what = "ruleTags", "unknown rule tag"
			}
			if verr := foreignKeyIssue(err, field, what); verr != nil {
				return verr
			}
			return apperrors.NewAppError(500, "failed to insert rule relations", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close relation batch", err)
	}
	return nil
}

// insertVersion stores the snapshot with matches as they decode from the stored columns.
func insertVersion(ctx context.Context, tx pgx.Tx, rule domain.Rule, actor string, at time.Time) error {
	rule.Matches = mapping.NormalizeMatches(rule.Matches)
	m, err := mapping.ToModelRuleVersion(domain.RuleVersion{
		RuleID:    rule.ID,
		Version:   rule.CurrentVersionID,
		Content:   rule,
		CreatedAt: at,
		CreatedBy: actor,
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode rule snapshot", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO rule_version (rule_id, version, content, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)`,
		m.RuleID, m.Version, m.Content, m.CreatedAt, m.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to insert version %d of rule %d", m.Version, m.RuleID), err)
	}
	return nil
}
