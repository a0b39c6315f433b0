package handlers_test

import (
	"net/http"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/chasseuragace/code-sub001/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *ApplicationHandlerTestSuite) TestCreateAPIToken() {
	token := &domain.APIToken{ID: "tok-1", AgencyID: "agency-a", Role: domain.RoleRecruiter, Name: "ATS integration", CreatedAt: fixedTime}
	suite.tokens.On("CreateToken", mock.Anything, owner, "ATS integration", domain.RoleRecruiter, mock.MatchedBy(func(d *time.Duration) bool {
		return d != nil && *d == time.Hour
	})).Return("tok-1.secret", token, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/api-tokens", &owner, map[string]any{"name": "ATS integration", "role": "recruiter", "expiresIn": 3600})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.CreateAPITokenResponse
	suite.decode(w, &resp)
	suite.Equal("tok-1.secret", resp.TokenString)
	suite.Equal("recruiter", resp.Details.Role)
	suite.tokens.AssertExpectations(suite.T())
}

func (suite *ApplicationHandlerTestSuite) TestCreateAPIToken_RejectsInput() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"candidate role", map[string]any{"name": "ATS integration", "role": "candidate"}},
		{"unknown role", map[string]any{"name": "ATS integration", "role": "superuser"}},
		{"short name", map[string]any{"name": "ab", "role": "viewer"}},
		{"non-positive expiry", map[string]any{"name": "ATS integration", "role": "viewer", "expiresIn": -5}},
	}

	for _, tt := range tests {
		w := suite.do(http.MethodPost, "/api/v1/api-tokens", &owner, tt.body)
		suite.Equal(http.StatusBadRequest, w.Code, tt.name)
	}
	suite.tokens.AssertNotCalled(suite.T(), "CreateToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApplicationHandlerTestSuite) TestListAPITokens_Forbidden() {
	suite.tokens.On("ListTokens", mock.Anything, recruiter).Return(nil, apperrors.ErrForbidden).Once()

	w := suite.do(http.MethodGet, "/api/v1/api-tokens", &recruiter, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestRevokeAPIToken() {
	suite.tokens.On("RevokeToken", mock.Anything, owner, "tok-1").Return(nil).Once()
	suite.tokens.On("RevokeToken", mock.Anything, owner, "tok-other").Return(apperrors.NewNotFoundError("token not found")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/api-tokens/tok-1", &owner, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/api-tokens/tok-other", &owner, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.tokens.AssertExpectations(suite.T())
}
