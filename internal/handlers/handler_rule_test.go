package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/handlers"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "bank-rules-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

// errorBody mirrors dto.ErrorResponse with the error left undecoded.
type errorBody struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

type RuleHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRuleService *MockRuleService
}

func (suite *RuleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockRuleService = new(MockRuleService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterRuleRoutes(v1, suite.mockRuleService)
}

func (suite *RuleHandlerTestSuite) do(method, path string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+signTestToken(suite.T(), userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func draftBody() map[string]any {
	return map[string]any{
		"type":                     "standard",
		"status":                   "active",
		"relatedBankAccounts":      []string{"DK-1"},
		"accountingPrimaryAccount": "1000",
		"matches": []map[string]any{
			{"category": "reference", "value": "BDP-"},
		},
	}
}

func (suite *RuleHandlerTestSuite) TestCreateRule_Success() {
	suite.mockRuleService.On("CreateRule", mock.Anything, mock.MatchedBy(func(req dto.RuleDraftRequest) bool {
		return req.AccountingPrimaryAccount == "1000" && len(req.Matches) == 1
	}), "alice").Return(int64(42), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/rules", draftBody(), "alice")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CreateRuleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(int64(42), resp.RuleID)
	suite.mockRuleService.AssertExpectations(suite.T())
}

func (suite *RuleHandlerTestSuite) TestCreateRule_ValidationIssues() {
	verr := &apperrors.ValidationError{}
	verr.Add("matchAmountMin", "must not exceed matchAmountMax")
	suite.mockRuleService.On("CreateRule", mock.Anything, mock.Anything, "alice").Return(int64(0), verr).Once()

	w := suite.do(http.MethodPost, "/api/v1/rules", draftBody(), "alice")

	suite.Equal(http.StatusBadRequest, w.Code)
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.False(body.Success)
	var issues []apperrors.FieldIssue
	suite.Require().NoError(json.Unmarshal(body.Error, &issues))
	suite.Equal([]apperrors.FieldIssue{{Path: "matchAmountMin", Message: "must not exceed matchAmountMax"}}, issues)
}

func (suite *RuleHandlerTestSuite) TestCreateRule_MalformedJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rules", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+signTestToken(suite.T(), "alice"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRuleService.AssertNotCalled(suite.T(), "CreateRule", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleHandlerTestSuite) TestCreateRule_NoToken() {
	w := suite.do(http.MethodPost, "/api/v1/rules", draftBody(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRuleService.AssertNotCalled(suite.T(), "CreateRule", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleHandlerTestSuite) TestGetRule_LockedByOther() {
	lockedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	holder := "bob"
	resp := &dto.RuleResponse{
		Rule:     domain.Rule{ID: 7, PrimaryAccount: "1000", CurrentVersionID: 3},
		IsLocked: true,
		LockedAt: &lockedAt,
		LockedBy: &holder,
	}
	suite.mockRuleService.On("GetRule", mock.Anything, int64(7), "alice").Return(resp, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules/7", nil, "alice")

	suite.Equal(http.StatusOK, w.Code)
	var got map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(true, got["isLocked"])
	suite.Equal("bob", got["lockedBy"])
	suite.Equal(float64(7), got["id"])
}

func (suite *RuleHandlerTestSuite) TestGetRule_NotFound() {
	suite.mockRuleService.On("GetRule", mock.Anything, int64(9), "alice").
		Return(nil, apperrors.NewNotFoundError("rule 9 not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules/9", nil, "alice")

	suite.Equal(http.StatusNotFound, w.Code)
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.JSONEq(`"rule 9 not found"`, string(body.Error))
}

func (suite *RuleHandlerTestSuite) TestGetRule_InvalidID() {
	for _, id := range []string{"abc", "0", "-3"} {
		w := suite.do(http.MethodGet, "/api/v1/rules/"+id, nil, "alice")
		suite.Equal(http.StatusBadRequest, w.Code, "id %q", id)
	}
	suite.mockRuleService.AssertNotCalled(suite.T(), "GetRule", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RuleHandlerTestSuite) TestUpdateRule_LockedByOther() {
	suite.mockRuleService.On("UpdateRule", mock.Anything, int64(7), mock.Anything, "alice").
		Return(0, apperrors.NewConflictError("Locked by another actor")).Once()

	w := suite.do(http.MethodPut, "/api/v1/rules/7", draftBody(), "alice")

	suite.Equal(http.StatusConflict, w.Code)
	var body errorBody
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.JSONEq(`"Locked by another actor"`, string(body.Error))
}

func (suite *RuleHandlerTestSuite) TestUpdateRule_Success() {
	suite.mockRuleService.On("UpdateRule", mock.Anything, int64(7), mock.Anything, "alice").Return(4, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/rules/7", draftBody(), "alice")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateRuleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.UpdateRuleResponse{Success: true, RuleID: 7, Version: 4}, resp)
}

func (suite *RuleHandlerTestSuite) TestReleaseRuleLock() {
	suite.mockRuleService.On("ReleaseRuleLock", mock.Anything, int64(7), "alice").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/rules/7/lock", nil, "alice")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockRuleService.AssertExpectations(suite.T())
}

func (suite *RuleHandlerTestSuite) TestListRules_InternalErrorHidesCause() {
	suite.mockRuleService.On("ListRules", mock.Anything).
		Return(nil, apperrors.NewAppError(500, "query failed", assertErr("connection reset"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules", nil, "alice")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
	suite.Contains(w.Body.String(), "Failed to list rules")
}

func (suite *RuleHandlerTestSuite) TestListRuleVersions() {
	versions := []domain.RuleVersion{{RuleID: 7, Version: 1}, {RuleID: 7, Version: 2}}
	suite.mockRuleService.On("ListRuleVersions", mock.Anything, int64(7)).Return(versions, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/rules/7/versions", nil, "alice")

	suite.Equal(http.StatusOK, w.Code)
	var got []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 2)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestRuleHandler(t *testing.T) {
	suite.Run(t, new(RuleHandlerTestSuite))
}
