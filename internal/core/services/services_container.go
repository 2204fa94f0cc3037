package services

import (
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	erp portssvc.ErpSubmitter,
	notifier portssvc.Notifier,
	listCache portssvc.RuleListCache,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Rule: NewRuleService(
			repos.RuleRepo,
			WithRuleListCache(listCache),
			WithLockTTL(cfg.RuleLockTTL),
			WithNotifyDomain(cfg.RuleNotifyDomain),
			WithSingleCostObject(cfg.RuleRequireSingleCostObject),
		),
		Transaction: NewTransactionService(
			repos.BankTransactionRepo,
			erp,
			WithErrorAccount(cfg.ErpErrorAccount),
			WithNotifier(notifier),
		),
	}
}
