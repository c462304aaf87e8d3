package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio-api/internal/middleware"
	"github.com/rentfolio/rentfolio-api/internal/models"
	"github.com/rentfolio/rentfolio-api/internal/repository"
	"github.com/rentfolio/rentfolio-api/internal/services"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// @Summary List Properties
// @Description Get a paginated list of properties
// @Tags Properties
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by address"
// @Param status query string false "Filter by status"
// @Param archived query string false "Archived filter (true, all)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /properties [get]
func (h *PropertyHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Filters["status"] = c.Query("status")
	query.Filters["archived"] = c.Query("archived")

	properties, total, err := h.propertyService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []models.PropertyResponse
	for _, p := range properties {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Property
// @Description Get a property by ID with its units
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} models.PropertyResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [get]
func (h *PropertyHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	property, err := h.propertyService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse()})
}

// @Summary Create Property
// @Description Create a new property; vacant units are seeded from the unit count
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body models.Property true "Property Data"
// @Success 201 {object} models.PropertyResponse
// @Security BearerAuth
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var property models.Property
	if err := BindNestedOrFlat(c, "property", &property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if property.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address is required"})
		return
	}

	if err := h.propertyService.Create(c.Request.Context(), &property); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"property": property.ToResponse()})
}

// @Summary Update Property
// @Description Update property figures and notes; status changes go through transition
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Param request body models.Property true "Property Data"
// @Success 200 {object} models.PropertyResponse
// @Security BearerAuth
// @Router /properties/{property_id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	var property models.Property
	if err := BindNestedOrFlat(c, "property", &property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property.ID = uint(id)

	if err := h.propertyService.Update(c.Request.Context(), &property); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse()})
}

// @Summary Delete Property
// @Description Delete a property and its units
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	if err := h.propertyService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

type TransitionRequest struct {
	Event string `json:"event" binding:"required"`
}

// @Summary Transition Property
// @Description Move a property through its pipeline (make_soft_offer, make_hard_offer, withdraw, start_rehab, rent_out, sell)
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Param request body TransitionRequest true "Transition Event"
// @Success 200 {object} models.PropertyResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id}/transition [post]
func (h *PropertyHandler) Transition(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is required"})
		return
	}

	property, err := h.propertyService.Transition(c.Request.Context(), uint(id), req.Event, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property.ToResponse(), "message": "Property status updated"})
}

// @Summary Archive Property
// @Description Hide a property from listings and reports
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id}/archive [post]
func (h *PropertyHandler) Archive(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	if err := h.propertyService.Archive(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property archived"})
}

// @Summary Unarchive Property
// @Description Restore an archived property
// @Tags Properties
// @Accept json
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id}/unarchive [post]
func (h *PropertyHandler) Unarchive(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	if err := h.propertyService.Unarchive(c.Request.Context(), uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property restored"})
}

type UnitStatusRequest struct {
	Event string `json:"event" binding:"required"`
	At    string `json:"at"`
}

// @Summary Change Unit Status
// @Description Change a unit's occupancy status (occupy, vacate, fall_behind, catch_up)
// @Tags Properties
// @Accept json
// @Produce json
// @Param unit_id path int true "Unit ID"
// @Param request body UnitStatusRequest true "Status Event"
// @Success 200 {object} models.PropertyUnitResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /units/{unit_id}/status [post]
func (h *PropertyHandler) ChangeUnitStatus(c *gin.Context) {
	unitID, _ := strconv.ParseUint(c.Param("unit_id"), 10, 32)
	var req UnitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event is required"})
		return
	}

	var at time.Time
	if req.At != "" {
		parsed, err := time.Parse("2006-01-02", req.At)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		at = parsed
	}

	unit, err := h.propertyService.ChangeUnitStatus(c.Request.Context(), uint(unitID), req.Event, at, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unit": unit.ToResponse(), "message": "Unit status updated"})
}

type UpdateUnitRequest struct {
	Rent       float64 `json:"rent"`
	TenantName *string `json:"tenant_name"`
}

// @Summary Update Unit
// @Description Update a unit's rent and tenant name
// @Tags Properties
// @Accept json
// @Produce json
// @Param unit_id path int true "Unit ID"
// @Param request body UpdateUnitRequest true "Unit Data"
// @Success 200 {object} models.PropertyUnitResponse
// @Security BearerAuth
// @Router /units/{unit_id} [put]
func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	unitID, _ := strconv.ParseUint(c.Param("unit_id"), 10, 32)
	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit := &models.PropertyUnit{
		ID:         uint(unitID),
		Rent:       req.Rent,
		TenantName: req.TenantName,
	}
	if err := h.propertyService.UpdateUnit(c.Request.Context(), unit); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unit": unit.ToResponse()})
}
