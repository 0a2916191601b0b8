package subcategory

import "catalog-backend/internal/shared/apperror"

var (
	ErrSubCategoryNotFound  = apperror.NotFound("Sub-category not found")
	ErrInvalidSubCategoryID = apperror.Validation("Invalid sub-category ID")
	ErrParentNotFound       = apperror.NotFound("Parent category not found")
	ErrNewParentNotFound    = apperror.NotFound("New parent category not found")
	ErrDuplicateName        = apperror.Conflict("Sub-category with this name already exists in this category")
	ErrHasItems             = apperror.Conflict("Cannot delete sub-category with existing items")
	// Moving a sub-category would strand its items under the old category.
	ErrMoveWithItems = apperror.Conflict("Cannot move sub-category with existing items to another category")
)

const (
	MsgRequiredFields     = "Name, image, description, and categoryId are required"
	MsgInvalidSubCategory = "Invalid sub-category data"
)

const (
	OpCreate = "Error creating sub-category"
	OpList   = "Error fetching sub-categories"
	OpGet    = "Error fetching sub-category"
	OpUpdate = "Error updating sub-category"
	OpDelete = "Error deleting sub-category"
)
