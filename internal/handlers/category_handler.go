package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "splitlist/internal/errors"
	"splitlist/internal/services"
)

// CategoryHandler handles category operations scoped to a list.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// AddCategoryRequest represents the request payload for adding a category to a list.
type AddCategoryRequest struct {
	Name   string  `json:"name" binding:"required,min=1,max=100"`
	Budget float64 `json:"budget" binding:"omitempty,gte=0"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// Budget is a pointer so that zero can be set explicitly.
type UpdateCategoryRequest struct {
	Name   string   `json:"name" binding:"omitempty,min=1,max=100"`
	Budget *float64 `json:"budget" binding:"omitempty,gte=0"`
}

// AddCategory handles attaching a new category to a list
// @Summary     Add category
// @Description Create a category and attach it to the list
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "List ID"
// @Param       request body AddCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "List not found"
// @Router      /lists/{id}/categories [post]
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	listID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.AddCategory(userID, listID, req.Name, req.Budget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"list_id": listID, "name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles updating a category within a list
// @Summary     Update category
// @Description Update a category's name or budget
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id         path string                true "List ID"
// @Param       categoryID path string                true "Category ID"
// @Param       request    body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "List or category not found"
// @Router      /lists/{id}/categories/{categoryID} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	listID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, listID, categoryID, req.Name, req.Budget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"list_id": listID})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// RemoveCategory handles detaching a category from a list
// @Summary     Remove category
// @Description Detach a category from the list, deleting its expenses in the list; the category record itself is deleted once no list references it
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id         path string true "List ID"
// @Param       categoryID path string true "Category ID"
// @Success     200 {object} MessageResponse "Category removed"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "List or category not found"
// @Router      /lists/{id}/categories/{categoryID} [delete]
func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	listID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryID")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.categoryService.RemoveCategory(userID, listID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REMOVE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"list_id": listID, "deleted": deleted})

	c.JSON(http.StatusOK, gin.H{"message": "category removed", "deleted": deleted})
}
