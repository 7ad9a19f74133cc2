package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"splitlist/internal/config"
	apperrors "splitlist/internal/errors"
	"splitlist/internal/models"
	"splitlist/internal/services"
)

// ListHandler handles list-related requests.
type ListHandler struct {
	listService  services.ListServicer
	auditService services.AuditServicer
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService services.ListServicer, auditService services.AuditServicer) *ListHandler {
	return &ListHandler{listService: listService, auditService: auditService}
}

// CategoryInputRequest names an existing category by id or carries the
// fields for a new one.
type CategoryInputRequest struct {
	ID     string  `json:"id" binding:"omitempty,uuid"`
	Name   string  `json:"name" binding:"omitempty,min=1,max=100"`
	Budget float64 `json:"budget" binding:"omitempty,gte=0"`
}

// RecurrenceInputRequest names an existing recurrence by id or carries the
// fields for a new one.
type RecurrenceInputRequest struct {
	ID        string     `json:"id" binding:"omitempty,uuid"`
	Type      string     `json:"type" binding:"omitempty,recurrence_type"`
	Period    string     `json:"period" binding:"omitempty,recurrence_period"`
	Interval  int        `json:"interval"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateListRequest represents the request payload for creating a list.
type CreateListRequest struct {
	Name       string                  `json:"name" binding:"required,min=1,max=100"`
	Budget     float64                 `json:"budget" binding:"omitempty,gte=0"`
	Categories []CategoryInputRequest  `json:"categories"`
	Recurrence *RecurrenceInputRequest `json:"recurrence"`
}

// ShareListRequest represents the request payload for sharing a list.
type ShareListRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateList handles the creation of a new list
// @Summary     Create a list
// @Description Create a budget list with inline or referenced categories and recurrence
// @Tags        lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateListRequest true "List details"
// @Success     201 {object} models.List "List created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Referenced category or recurrence not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lists [post]
func (h *ListHandler) CreateList(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	categories := make([]services.CategoryInput, 0, len(req.Categories))
	for _, in := range req.Categories {
		if in.ID != "" {
			categories = append(categories, services.CategoryInput{ID: in.ID})
			continue
		}
		categories = append(categories, services.CategoryInput{
			New: &services.NewCategory{Name: in.Name, Budget: in.Budget},
		})
	}

	var recurrenceIn *services.RecurrenceInput
	if req.Recurrence != nil {
		if req.Recurrence.ID != "" {
			recurrenceIn = &services.RecurrenceInput{ID: req.Recurrence.ID}
		} else {
			recurrenceIn = &services.RecurrenceInput{New: &services.NewRecurrence{
				Type:      models.RecurrenceType(req.Recurrence.Type),
				Period:    models.RecurrencePeriod(req.Recurrence.Period),
				Interval:  req.Recurrence.Interval,
				StartDate: req.Recurrence.StartDate,
				EndDate:   req.Recurrence.EndDate,
			}}
		}
	}

	list, err := h.listService.CreateList(userID, req.Name, req.Budget, categories, recurrenceIn)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_LIST", "list", list.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "budget": req.Budget})

	c.JSON(http.StatusCreated, gin.H{"list": list})
}

// GetLists handles the aggregated retrieval of the user's lists
// @Summary     Get lists
// @Description Get all lists the user owns or is a member of, with expenses narrowed to the current recurrence window unless requested otherwise
// @Tags        lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       expenses query string false "Expense view: 'current' (windowed) or 'all'"
// @Success     200 {array} models.List "Lists with resolved relations"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /lists [get]
func (h *ListHandler) GetLists(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Per-request override of the configured aggregation mode.
	mode := config.Get().ExpenseAggregation
	switch c.Query("expenses") {
	case "":
	case "all":
		mode = config.AggregationUnfiltered
	case "current":
		mode = config.AggregationFiltered
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "expenses must be 'all' or 'current'"))
		return
	}

	lists, err := h.listService.GetListsForUser(userID, mode)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// GetList handles retrieving a single list
// @Summary     Get list by ID
// @Description Get a specific list with its relations resolved
// @Tags        lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "List ID"
// @Success     200 {object} models.List "List details"
// @Failure     400 {object} ErrorResponse "Invalid list ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "List not found"
// @Router      /lists/{id} [get]
func (h *ListHandler) GetList(c *gin.Context) {
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

	list, err := h.listService.GetListByID(userID, listID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// ShareList handles sharing a list with another user by email
// @Summary     Share a list
// @Description Add the user identified by email to the list's membership
// @Tags        lists
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "List ID"
// @Param       request body ShareListRequest true "Target user email"
// @Success     200 {object} models.List "Updated list"
// @Failure     400 {object} ErrorResponse "Invalid input or list ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "List or user not found"
// @Router      /lists/{id}/share [post]
func (h *ListHandler) ShareList(c *gin.Context) {
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

	var req ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	list, err := h.listService.ShareList(userID, listID, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SHARE_LIST", "list", listID, c.ClientIP(),
		map[string]interface{}{"email": req.Email})

	c.JSON(http.StatusOK, gin.H{"list": list})
}
