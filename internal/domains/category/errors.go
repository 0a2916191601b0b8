package category

import "catalog-backend/internal/shared/apperror"

// ============================================================
// SENTINEL ERRORS
// ============================================================
// Compared with errors.Is; the message is what the client reads.

var (
	ErrCategoryNotFound  = apperror.NotFound("Category not found")
	ErrInvalidCategoryID = apperror.Validation("Invalid category ID")
	ErrDuplicateName     = apperror.Conflict("Category with this name already exists")
	ErrHasDependents     = apperror.Conflict("Cannot delete category with existing sub-categories or items")
)

const (
	MsgRequiredFields  = "Name, image, and description are required"
	MsgInvalidCategory = "Invalid category data"
)

// Operation messages used for unexpected failures.
const (
	OpCreate = "Error creating category"
	OpList   = "Error fetching categories"
	OpGet    = "Error fetching category"
	OpUpdate = "Error updating category"
	OpDelete = "Error deleting category"
)
