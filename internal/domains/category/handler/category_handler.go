package handler

import (
	"net/http"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.MsgInvalidCategory, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, category.OpCreate)
		return
	}

	response.Created(c, "Category created successfully", resp)
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, category.OpList)
		return
	}

	response.List(c, list, len(list))
}

// Get handles GET /categories/:identifier (id or name)
func (h *CategoryHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.Error(c, err, category.OpGet)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, category.MsgInvalidCategory, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, category.OpUpdate)
		return
	}

	response.Success(c, http.StatusOK, "Category updated successfully", resp)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, category.OpDelete)
		return
	}

	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}

// RegisterRoutes mounts the category endpoints on rg.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/:identifier", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}
