package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ruleHandler handles HTTP requests related to rules.
type ruleHandler struct {
	ruleService portssvc.RuleSvcFacade
}

func newRuleHandler(rs portssvc.RuleSvcFacade) *ruleHandler {
	return &ruleHandler{ruleService: rs}
}

// RegisterRuleRoutes registers routes related to rules.
func RegisterRuleRoutes(rg *gin.RouterGroup, ruleService portssvc.RuleSvcFacade) {
	h := newRuleHandler(ruleService)

	rules := rg.Group("/rules")
	{
		rules.GET("", h.listRules)
		rules.POST("", h.createRule)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
		rules.DELETE("/:id/lock", h.releaseRuleLock)
		rules.GET("/:id/versions", h.listRuleVersions)
	}
}

// listRules godoc
// @Summary List rules
// @Description Returns the rule overview with match values flattened per category
// @Tags rules
// @Produce  json
// @Success 200 {array} dto.RuleListItem
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list rules"
// @Security BearerAuth
// @Router /rules [get]
func (h *ruleHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.ruleService.ListRules(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list rules")
		return
	}
	c.JSON(http.StatusOK, items)
}

// createRule godoc
// @Summary Create a rule
// @Description Validates the draft and stores it as version 1
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   rule body dto.RuleDraftRequest true "Rule draft"
// @Success 201 {object} dto.CreateRuleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation issues"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create rule"
// @Security BearerAuth
// @Router /rules [post]
func (h *ruleHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RuleDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRule", slog.String("error", err.Error()))
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		unauthorized(c)
		return
	}

	ruleID, err := h.ruleService.CreateRule(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create rule")
		return
	}

	logger.Info("Rule created", slog.Int64("rule_id", ruleID))
	c.JSON(http.StatusCreated, dto.CreateRuleResponse{Success: true, RuleID: ruleID})
}

// getRule godoc
// @Summary Open a rule
// @Description Returns the rule and takes the edit lock for the caller. When another user holds an active lock the rule is returned read-only with isLocked set.
// @Tags rules
// @Produce  json
// @Param   id path int true "Rule ID"
// @Success 200 {object} dto.RuleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid rule ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Rule not found"
// @Failure 409 {object} dto.ErrorResponse "Rule changed while opening"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve rule"
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *ruleHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID, ok := parseRuleID(c)
	if !ok {
		return
	}
	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), ruleID, actor)
	if err != nil {
		respondError(c, logger.With(slog.Int64("rule_id", ruleID)), err, "Failed to retrieve rule")
		return
	}
	c.JSON(http.StatusOK, rule)
}

// updateRule godoc
// @Summary Update a rule
// @Description Stores the draft as the rule's next version and releases the edit lock
// @Tags rules
// @Accept  json
// @Produce  json
// @Param   id path int true "Rule ID"
// @Param   rule body dto.RuleDraftRequest true "Rule draft"
// @Success 200 {object} dto.UpdateRuleResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation issues"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Rule not found"
// @Failure 409 {object} dto.ErrorResponse "Locked by another actor"
// @Failure 500 {object} dto.ErrorResponse "Failed to update rule"
// @Security BearerAuth
// @Router /rules/{id} [put]
func (h *ruleHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID, ok := parseRuleID(c)
	if !ok {
		return
	}
	var req dto.RuleDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRule", slog.String("error", err.Error()))
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	version, err := h.ruleService.UpdateRule(c.Request.Context(), ruleID, req, actor)
	if err != nil {
		respondError(c, logger.With(slog.Int64("rule_id", ruleID)), err, "Failed to update rule")
		return
	}

	logger.Info("Rule updated", slog.Int64("rule_id", ruleID), slog.Int("version", version))
	c.JSON(http.StatusOK, dto.UpdateRuleResponse{Success: true, RuleID: ruleID, Version: version})
}

// releaseRuleLock godoc
// @Summary Release the edit lock
// @Description Clears the caller's edit lock on a rule. Locks held by others are left alone.
// @Tags rules
// @Param   id path int true "Rule ID"
// @Success 204 "Lock released"
// @Failure 400 {object} dto.ErrorResponse "Invalid rule ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Rule not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to release lock"
// @Security BearerAuth
// @Router /rules/{id}/lock [delete]
func (h *ruleHandler) releaseRuleLock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID, ok := parseRuleID(c)
	if !ok {
		return
	}
	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	if err := h.ruleService.ReleaseRuleLock(c.Request.Context(), ruleID, actor); err != nil {
		respondError(c, logger.With(slog.Int64("rule_id", ruleID)), err, "Failed to release lock")
		return
	}
	c.Status(http.StatusNoContent)
}

// listRuleVersions godoc
// @Summary List rule versions
// @Description Returns every stored snapshot of a rule in ascending version order
// @Tags rules
// @Produce  json
// @Param   id path int true "Rule ID"
// @Success 200 {array} domain.RuleVersion
// @Failure 400 {object} dto.ErrorResponse "Invalid rule ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Rule not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list versions"
// @Security BearerAuth
// @Router /rules/{id}/versions [get]
func (h *ruleHandler) listRuleVersions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ruleID, ok := parseRuleID(c)
	if !ok {
		return
	}

	versions, err := h.ruleService.ListRuleVersions(c.Request.Context(), ruleID)
	if err != nil {
		respondError(c, logger.With(slog.Int64("rule_id", ruleID)), err, "Failed to list versions")
		return
	}
	c.JSON(http.StatusOK, versions)
}

func parseRuleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid rule ID")
		return 0, false
	}
	return id, true
}
