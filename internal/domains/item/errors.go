package item

import "catalog-backend/internal/shared/apperror"

var (
	ErrItemNotFound  = apperror.NotFound("Item not found")
	ErrInvalidItemID = apperror.Validation("Invalid item ID")
	// Returned for a missing sub-category and for one that sits under a
	// different category; clients cannot tell the two apart.
	ErrSubCategoryMismatch = apperror.NotFound("Sub-category not found or does not belong to specified category")
	ErrSearchQueryRequired = apperror.Validation(`Search query parameter "name" is required`)
)

const (
	MsgRequiredFields = "Name, image, description, baseAmount, and categoryId are required"
	MsgInvalidItem    = "Invalid item data"
)

const (
	OpCreate = "Error creating item"
	OpList   = "Error fetching items"
	OpGet    = "Error fetching item"
	OpSearch = "Error searching items"
	OpUpdate = "Error updating item"
	OpDelete = "Error deleting item"
)
