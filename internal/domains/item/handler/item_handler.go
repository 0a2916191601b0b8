package handler

import (
	"net/http"

	"catalog-backend/internal/domains/item"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	service item.ItemService
}

func NewItemHandler(svc item.ItemService) *ItemHandler {
	return &ItemHandler{
		service: svc,
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req item.CreateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, item.MsgInvalidItem, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, item.OpCreate)
		return
	}

	response.Created(c, "Item created successfully", resp)
}

// List handles GET /items
func (h *ItemHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, item.OpList)
		return
	}

	response.List(c, list, len(list))
}

// Search handles GET /items/search?name=
func (h *ItemHandler) Search(c *gin.Context) {
	name := c.Query("name")

	list, err := h.service.Search(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err, item.OpSearch)
		return
	}

	response.List(c, list, len(list), response.WithSearchQuery(name))
}

// ListByCategory handles GET /items/category/:categoryId
func (h *ItemHandler) ListByCategory(c *gin.Context) {
	parent, list, err := h.service.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		response.Error(c, err, item.OpList)
		return
	}

	response.List(c, list, len(list), response.WithCategory(parent.Name))
}

// ListBySubCategory handles GET /items/subcategory/:subCategoryId
func (h *ItemHandler) ListBySubCategory(c *gin.Context) {
	parent, sub, list, err := h.service.ListBySubCategory(c.Request.Context(), c.Param("subCategoryId"))
	if err != nil {
		response.Error(c, err, item.OpList)
		return
	}

	response.List(c, list, len(list),
		response.WithCategory(parent.Name),
		response.WithSubCategory(sub.Name),
	)
}

// Get handles GET /items/:identifier
func (h *ItemHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.Error(c, err, item.OpGet)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// Update handles PUT /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	var req item.UpdateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, item.MsgInvalidItem, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, item.OpUpdate)
		return
	}

	response.Success(c, http.StatusOK, "Item updated successfully", resp)
}

// Delete handles DELETE /items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, item.OpDelete)
		return
	}

	response.Success(c, http.StatusOK, "Item deleted successfully", nil)
}

func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/search", h.Search)
		items.GET("/category/:categoryId", h.ListByCategory)
		items.GET("/subcategory/:subCategoryId", h.ListBySubCategory)
		items.GET("/:identifier", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}
