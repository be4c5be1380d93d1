package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

// TestRegister_Success tests that the password is never echoed back
func (suite *HandlerTestSuite) TestRegister_Success() {
	w := suite.request(http.MethodPost, "/api/users", map[string]string{"username": "alice", "password": "secret"})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.JSONEq(suite.T(), `{"id": 1, "username": "alice"}`, w.Body.String())
}

// TestRegister_UsernameTaken tests registering the same username twice
func (suite *HandlerTestSuite) TestRegister_UsernameTaken() {
	body := map[string]string{"username": "alice", "password": "secret"}
	suite.request(http.MethodPost, "/api/users", body)

	w := suite.request(http.MethodPost, "/api/users", body)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "username already taken")
}

// TestRegister_ShortUsername tests the username length rule
func (suite *HandlerTestSuite) TestRegister_ShortUsername() {
	w := suite.request(http.MethodPost, "/api/users", map[string]string{"username": "al", "password": "secret"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "must be at least 3 characters")
}

// TestGetUser tests fetching registered and missing users
func (suite *HandlerTestSuite) TestGetUser() {
	suite.request(http.MethodPost, "/api/users", map[string]string{"username": "alice", "password": "secret"})

	w := suite.request(http.MethodGet, "/api/users/1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"id": 1, "username": "alice"}`, w.Body.String())

	w = suite.request(http.MethodGet, "/api/users/2", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}
