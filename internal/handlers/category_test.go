package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
)

// TestListCategories_Empty tests that an empty store lists as an empty array
func (suite *HandlerTestSuite) TestListCategories_Empty() {
	w := suite.request(http.MethodGet, "/api/categories", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `[]`, w.Body.String())
}

// TestListCategories_WithCounts tests that counts reflect referencing tasks
func (suite *HandlerTestSuite) TestListCategories_WithCounts() {
	work := suite.createCategory("Work", "blue")
	suite.createCategory("Home", "green")
	suite.createTask("a", work.ID, false)
	suite.createTask("b", work.ID, true)

	w := suite.request(http.MethodGet, "/api/categories", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `[
		{"id": 1, "name": "Work", "color": "blue", "count": 2},
		{"id": 2, "name": "Home", "color": "green", "count": 0}
	]`, w.Body.String())
}

// TestGetCategory tests fetching existing and missing categories
func (suite *HandlerTestSuite) TestGetCategory() {
	suite.createCategory("Work", "blue")

	w := suite.request(http.MethodGet, "/api/categories/1", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"id": 1, "name": "Work", "color": "blue"}`, w.Body.String())

	w = suite.request(http.MethodGet, "/api/categories/2", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateCategory_Success tests successful category creation
func (suite *HandlerTestSuite) TestCreateCategory_Success() {
	w := suite.request(http.MethodPost, "/api/categories", map[string]string{"name": "Errands", "color": "orange"})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.JSONEq(suite.T(), `{"id": 1, "name": "Errands", "color": "orange"}`, w.Body.String())
}

// TestCreateCategory_MissingFields tests that every missing field is reported
func (suite *HandlerTestSuite) TestCreateCategory_MissingFields() {
	w := suite.request(http.MethodPost, "/api/categories", map[string]string{})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Code    string `json:"code"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	suite.decode(w, &response)
	assert.Equal(suite.T(), "INVALID_INPUT", response.Code)
	suite.Require().Len(response.Details, 2)
	assert.Equal(suite.T(), "name", response.Details[0].Field)
	assert.Equal(suite.T(), "is required", response.Details[0].Message)
	assert.Equal(suite.T(), "color", response.Details[1].Field)

	categories, err := suite.store.ListCategories(context.Background())
	suite.Require().NoError(err)
	assert.Empty(suite.T(), categories)
}

// TestCreateCategory_MalformedJSON tests a body that is not JSON
func (suite *HandlerTestSuite) TestCreateCategory_MalformedJSON() {
	w := suite.request(http.MethodPost, "/api/categories", `{"name": `)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"body"`)
}

// TestUpdateCategory_Partial tests that omitted fields keep their values
func (suite *HandlerTestSuite) TestUpdateCategory_Partial() {
	category := suite.createCategory("Work", "blue")

	w := suite.request(http.MethodPut, "/api/categories/1", map[string]string{"name": "Office"})

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"id": 1, "name": "Office", "color": "blue"}`, w.Body.String())

	stored, err := suite.store.GetCategory(context.Background(), category.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Office", stored.Name)
}

// TestUpdateCategory_EmptyName tests that a provided name must not be empty
func (suite *HandlerTestSuite) TestUpdateCategory_EmptyName() {
	suite.createCategory("Work", "blue")

	w := suite.request(http.MethodPut, "/api/categories/1", map[string]string{"name": ""})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"field":"name"`)
}

// TestUpdateCategory_NotFound tests updating a missing category
func (suite *HandlerTestSuite) TestUpdateCategory_NotFound() {
	w := suite.request(http.MethodPut, "/api/categories/42", map[string]string{"name": "x"})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Category not found")
}

// TestUpdateCategory_InvalidID tests a non-numeric ID
func (suite *HandlerTestSuite) TestUpdateCategory_InvalidID() {
	w := suite.request(http.MethodPut, "/api/categories/abc", map[string]string{"name": "x"})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid category ID")
}

// TestDeleteCategory_Success tests deleting an unreferenced category
func (suite *HandlerTestSuite) TestDeleteCategory_Success() {
	suite.createCategory("Work", "blue")

	w := suite.request(http.MethodDelete, "/api/categories/1", nil)

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
	assert.Empty(suite.T(), w.Body.String())
}

// TestDeleteCategory_HasTasks tests that a referenced category is a conflict
func (suite *HandlerTestSuite) TestDeleteCategory_HasTasks() {
	category := suite.createCategory("Work", "blue")
	suite.createTask("a", category.ID, false)

	w := suite.request(http.MethodDelete, "/api/categories/1", nil)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"code":"CONFLICT"`)

	_, err := suite.store.GetCategory(context.Background(), category.ID)
	assert.NoError(suite.T(), err)
}

// TestDeleteCategory_NotFound tests deleting a missing category
func (suite *HandlerTestSuite) TestDeleteCategory_NotFound() {
	w := suite.request(http.MethodDelete, "/api/categories/7", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteCategory_InvalidID tests a negative ID
func (suite *HandlerTestSuite) TestDeleteCategory_InvalidID() {
	w := suite.request(http.MethodDelete, "/api/categories/-1", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}
