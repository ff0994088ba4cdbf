package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// CreateCategory handles creating a menu category
func (h *MenuHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.CreateCategory(c.Request.Context(), req.Name, req.SortOrder)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created", category)
}

// ListCategories handles listing menu categories
func (h *MenuHandler) ListCategories(c *gin.Context) {
	categories, err := h.menuService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved", categories)
}

// UpdateCategory handles updating a menu category
func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.menuService.UpdateCategory(c.Request.Context(), id, req.Name, req.SortOrder)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated", category)
}

// DeleteCategory handles deleting a menu category
func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.menuService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateItem handles creating a menu item
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req struct {
		CategoryID  uuid.UUID `json:"category_id" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		Price       float64   `json:"price" binding:"required"`
		Available   *bool     `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), &service.CreateMenuItemInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created", item)
}

// ListItems handles listing menu items
func (h *MenuHandler) ListItems(c *gin.Context) {
	var categoryID *uuid.UUID
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if id, err := uuid.Parse(categoryIDStr); err == nil {
			categoryID = &id
		}
	}
	availableOnly := c.Query("available") == "true"

	items, err := h.menuService.ListMenuItems(c.Request.Context(), categoryID, availableOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu items retrieved", items)
}

// GetItem handles getting a single menu item
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	item, err := h.menuService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved", item)
}

// UpdateItem handles updating a menu item
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), id, &service.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated", item)
}

// DeleteItem handles deleting a menu item
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
