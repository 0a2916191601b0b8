package handler

import (
	"net/http"

	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type SubCategoryHandler struct {
	service subcategory.SubCategoryService
}

func NewSubCategoryHandler(svc subcategory.SubCategoryService) *SubCategoryHandler {
	return &SubCategoryHandler{
		service: svc,
	}
}

// Create handles POST /subcategories
func (h *SubCategoryHandler) Create(c *gin.Context) {
	var req subcategory.CreateSubCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, subcategory.MsgInvalidSubCategory, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, subcategory.OpCreate)
		return
	}

	response.Created(c, "Sub-category created successfully", resp)
}

// List handles GET /subcategories
func (h *SubCategoryHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, subcategory.OpList)
		return
	}

	response.List(c, list, len(list))
}

// ListByCategory handles GET /subcategories/category/:categoryId
func (h *SubCategoryHandler) ListByCategory(c *gin.Context) {
	parent, list, err := h.service.ListByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		response.Error(c, err, subcategory.OpList)
		return
	}

	response.List(c, list, len(list), response.WithCategory(parent.Name))
}

// Get handles GET /subcategories/:identifier
func (h *SubCategoryHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		response.Error(c, err, subcategory.OpGet)
		return
	}

	response.Success(c, http.StatusOK, "", resp)
}

// Update handles PUT /subcategories/:id
func (h *SubCategoryHandler) Update(c *gin.Context) {
	var req subcategory.UpdateSubCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, subcategory.MsgInvalidSubCategory, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, subcategory.OpUpdate)
		return
	}

	response.Success(c, http.StatusOK, "Sub-category updated successfully", resp)
}

// Delete handles DELETE /subcategories/:id
func (h *SubCategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, subcategory.OpDelete)
		return
	}

	response.Success(c, http.StatusOK, "Sub-category deleted successfully", nil)
}

func (h *SubCategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	subCategories := rg.Group("/subcategories")
	{
		subCategories.POST("", h.Create)
		subCategories.GET("", h.List)
		subCategories.GET("/category/:categoryId", h.ListByCategory)
		subCategories.GET("/:identifier", h.Get)
		subCategories.PUT("/:id", h.Update)
		subCategories.DELETE("/:id", h.Delete)
	}
}
