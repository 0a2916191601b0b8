package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/item"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/identifier"
	"catalog-backend/pkg/logger"
)

type itemServiceImpl struct {
	repository    item.ItemRepository
	categories    item.CategoryReader
	subCategories item.SubCategoryReader
}

func NewItemService(
	repo item.ItemRepository,
	categories item.CategoryReader,
	subCategories item.SubCategoryReader,
) item.ItemService {
	return &itemServiceImpl{
		repository:    repo,
		categories:    categories,
		subCategories: subCategories,
	}
}

func (s *itemServiceImpl) loadCategory(ctx context.Context, id string) (*category.Category, error) {
	if !identifier.IsObjectID(id) {
		return nil, category.ErrCategoryNotFound
	}
	return s.categories.GetByID(ctx, identifier.Normalize(id))
}

// loadSubCategory requires the sub-category to exist under categoryID.
// Both failures surface as the same not-found error.
func (s *itemServiceImpl) loadSubCategory(ctx context.Context, id, categoryID string) (*subcategory.SubCategory, error) {
	if !identifier.IsObjectID(id) {
		return nil, item.ErrSubCategoryMismatch
	}
	sub, err := s.subCategories.GetByID(ctx, identifier.Normalize(id))
	if err != nil {
		if errors.Is(err, subcategory.ErrSubCategoryNotFound) {
			return nil, item.ErrSubCategoryMismatch
		}
		return nil, err
	}
	if sub.CategoryID != categoryID {
		return nil, item.ErrSubCategoryMismatch
	}
	return sub, nil
}

func (s *itemServiceImpl) Create(ctx context.Context, req *item.CreateItemReq) (*item.ItemResp, error) {
	if req == nil {
		req = &item.CreateItemReq{}
	}

	// ========== STEP 1: VALIDATE INPUT ==========
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// ========== STEP 2: CATEGORY MUST EXIST ==========
	parent, err := s.loadCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	// ========== STEP 3: SUB-CATEGORY MUST BELONG TO IT ==========
	var sub *subcategory.SubCategory
	if req.SubCategoryID != nil {
		sub, err = s.loadSubCategory(ctx, *req.SubCategoryID, parent.ID)
		if err != nil {
			return nil, err
		}
	}

	// ========== STEP 4: DERIVE TOTAL + PERSIST ==========
	entity := item.NewItem(item.NewItemParams{
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		Category:         parent,
		SubCategory:      sub,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		BaseAmount:       *req.BaseAmount,
		Discount:         req.Discount,
	})

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("item created", map[string]interface{}{
		"id":           created.ID,
		"category_id":  created.CategoryID,
		"total_amount": created.TotalAmount.String(),
	})

	return item.ItemToResp(created), nil
}

func (s *itemServiceImpl) List(ctx context.Context) ([]item.ItemResp, error) {
	list, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	return item.ItemsToResp(list), nil
}

func (s *itemServiceImpl) ListByCategory(ctx context.Context, categoryID string) (*category.Ref, []item.ItemResp, error) {
	parent, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}

	list, err := s.repository.ListByCategory(ctx, parent.ID)
	if err != nil {
		return nil, nil, err
	}
	return parent.Ref(), item.ItemsToResp(list), nil
}

func (s *itemServiceImpl) ListBySubCategory(ctx context.Context, subCategoryID string) (*category.Ref, *subcategory.Ref, []item.ItemResp, error) {
	if !identifier.IsObjectID(subCategoryID) {
		return nil, nil, nil, subcategory.ErrSubCategoryNotFound
	}
	sub, err := s.subCategories.GetByID(ctx, identifier.Normalize(subCategoryID))
	if err != nil {
		return nil, nil, nil, err
	}

	list, err := s.repository.ListBySubCategory(ctx, sub.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	parent := sub.Category
	if parent == nil {
		parent = &category.Ref{ID: sub.CategoryID}
	}
	return parent, sub.Ref(), item.ItemsToResp(list), nil
}

func (s *itemServiceImpl) Search(ctx context.Context, name string) ([]item.ItemResp, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, item.ErrSearchQueryRequired
	}

	list, err := s.repository.Search(ctx, name)
	if err != nil {
		return nil, err
	}
	return item.ItemsToResp(list), nil
}

func (s *itemServiceImpl) Get(ctx context.Context, ident string) (*item.ItemResp, error) {
	found, err := identifier.Resolve(ctx, ident, s.repository.GetByID, s.repository.GetByName)
	if err != nil {
		return nil, err
	}
	return item.ItemToResp(found), nil
}

func (s *itemServiceImpl) Update(ctx context.Context, id string, req *item.UpdateItemReq) (*item.ItemResp, error) {
	if !identifier.IsObjectID(id) {
		return nil, item.ErrInvalidItemID
	}
	id = identifier.Normalize(id)

	if req == nil {
		req = &item.UpdateItemReq{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := item.Changes{
		Name:             req.Name,
		Image:            req.Image,
		Description:      req.Description,
		TaxApplicability: req.TaxApplicability,
		Tax:              req.Tax,
		BaseAmount:       req.BaseAmount,
		Discount:         req.Discount,
	}

	// ========== STEP 1: EFFECTIVE CATEGORY ==========
	categoryID := existing.CategoryID
	categoryChanged := false
	if req.CategoryID != nil && identifier.Normalize(*req.CategoryID) != existing.CategoryID {
		parent, err := s.loadCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		changes.Category = parent
		categoryID = parent.ID
		categoryChanged = true
	}

	// ========== STEP 2: EFFECTIVE SUB-CATEGORY ==========
	subID := existing.SubCategoryID
	subChanged := false
	if req.SubCategoryID != nil {
		trimmed := identifier.Normalize(*req.SubCategoryID)
		switch {
		case trimmed == "":
			changes.ClearSubCategory = true
			subID = nil
			subChanged = existing.SubCategoryID != nil
		case existing.SubCategoryID == nil || trimmed != *existing.SubCategoryID:
			subID = &trimmed
			subChanged = true
		}
	}

	// ========== STEP 3: RE-CHECK THE PAIR ==========
	// Either reference moving re-validates the (category, sub-category)
	// pair, so moving an item to a new category without clearing its old
	// sub-category is refused.
	if (categoryChanged || subChanged) && subID != nil {
		sub, err := s.loadSubCategory(ctx, *subID, categoryID)
		if err != nil {
			return nil, err
		}
		if subChanged {
			changes.SubCategory = sub
		}
	}

	// ========== STEP 4: RECOMPUTE + PERSIST ==========
	existing.Apply(changes)

	updated, err := s.repository.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	logger.Info("item updated", map[string]interface{}{
		"id":           updated.ID,
		"total_amount": updated.TotalAmount.String(),
	})

	return item.ItemToResp(updated), nil
}

func (s *itemServiceImpl) Delete(ctx context.Context, id string) error {
	if !identifier.IsObjectID(id) {
		return item.ErrInvalidItemID
	}

	if err := s.repository.Delete(ctx, identifier.Normalize(id)); err != nil {
		if errors.Is(err, item.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
