package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/identifier"
	"catalog-backend/pkg/logger"
)

type subCategoryServiceImpl struct {
	repository subcategory.SubCategoryRepository
	categories subcategory.CategoryReader
	items      subcategory.ItemCounter
}

func NewSubCategoryService(
	repo subcategory.SubCategoryRepository,
	categories subcategory.CategoryReader,
	items subcategory.ItemCounter,
) subcategory.SubCategoryService {
	return &subCategoryServiceImpl{
		repository: repo,
		categories: categories,
		items:      items,
	}
}

// loadCategory maps the category domain's not-found onto notFound so the
// caller sees which reference was missing.
func (s *subCategoryServiceImpl) loadCategory(ctx context.Context, id string, notFound error) (*category.Category, error) {
	if !identifier.IsObjectID(id) {
		return nil, notFound
	}
	c, err := s.categories.GetByID(ctx, identifier.Normalize(id))
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return c, nil
}

func (s *subCategoryServiceImpl) Create(ctx context.Context, req *subcategory.CreateSubCategoryReq) (*subcategory.SubCategoryResp, error) {
	if req == nil {
		return nil, apperror.Validation(subcategory.MsgRequiredFields)
	}

	// ========== STEP 1: VALIDATE INPUT ==========
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// ========== STEP 2: PARENT MUST EXIST ==========
	parent, err := s.loadCategory(ctx, req.CategoryID, subcategory.ErrParentNotFound)
	if err != nil {
		return nil, err
	}

	// ========== STEP 3: NAME UNIQUE WITHIN PARENT ==========
	exists, err := s.repository.ExistsByNameInCategory(ctx, req.Name, parent.ID, "")
	if err != nil {
		return nil, fmt.Errorf("create sub-category: check name: %w", err)
	}
	if exists {
		return nil, subcategory.ErrDuplicateName
	}

	// ========== STEP 4: SNAPSHOT TAX + PERSIST ==========
	entity := subcategory.NewSubCategory(req.Name, req.Image, req.Description, parent, req.TaxOverride())

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("sub-category created", map[string]interface{}{
		"id":                created.ID,
		"category_id":       created.CategoryID,
		"tax_applicability": created.TaxApplicability,
		"tax":               created.Tax.String(),
	})

	return subcategory.SubCategoryToResp(created), nil
}

func (s *subCategoryServiceImpl) List(ctx context.Context) ([]subcategory.SubCategoryResp, error) {
	list, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	return subcategory.SubCategoriesToResp(list), nil
}

func (s *subCategoryServiceImpl) ListByCategory(ctx context.Context, categoryID string) (*category.Ref, []subcategory.SubCategoryResp, error) {
	parent, err := s.loadCategory(ctx, categoryID, category.ErrCategoryNotFound)
	if err != nil {
		return nil, nil, err
	}

	list, err := s.repository.ListByCategory(ctx, parent.ID)
	if err != nil {
		return nil, nil, err
	}
	return parent.Ref(), subcategory.SubCategoriesToResp(list), nil
}

func (s *subCategoryServiceImpl) Get(ctx context.Context, ident string) (*subcategory.SubCategoryResp, error) {
	found, err := identifier.Resolve(ctx, ident, s.repository.GetByID, s.repository.GetByName)
	if err != nil {
		return nil, err
	}
	return subcategory.SubCategoryToResp(found), nil
}

func (s *subCategoryServiceImpl) Update(ctx context.Context, id string, req *subcategory.UpdateSubCategoryReq) (*subcategory.SubCategoryResp, error) {
	if !identifier.IsObjectID(id) {
		return nil, subcategory.ErrInvalidSubCategoryID
	}
	id = identifier.Normalize(id)

	if req == nil {
		req = &subcategory.UpdateSubCategoryReq{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := subcategory.Changes{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Tax:         subcategory.TaxOverride{Applicable: req.TaxApplicability, Tax: req.Tax},
	}

	// ========== RE-CHECK A NEW PARENT ==========
	if req.CategoryID != nil && identifier.Normalize(*req.CategoryID) != existing.CategoryID {
		parent, err := s.loadCategory(ctx, *req.CategoryID, subcategory.ErrNewParentNotFound)
		if err != nil {
			return nil, err
		}

		// Items keep their category; moving their sub-category would break
		// the item -> sub-category -> category consistency.
		n, err := s.items.CountBySubCategory(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("update sub-category: count items: %w", err)
		}
		if n > 0 {
			return nil, subcategory.ErrMoveWithItems
		}
		changes.Parent = parent
	}

	renamed := req.Name != nil && strings.TrimSpace(*req.Name) != existing.Name
	existing.Apply(changes)

	if renamed || changes.Parent != nil {
		exists, err := s.repository.ExistsByNameInCategory(ctx, existing.Name, existing.CategoryID, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("update sub-category: check name: %w", err)
		}
		if exists {
			return nil, subcategory.ErrDuplicateName
		}
	}

	updated, err := s.repository.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return subcategory.SubCategoryToResp(updated), nil
}

func (s *subCategoryServiceImpl) Delete(ctx context.Context, id string) error {
	if !identifier.IsObjectID(id) {
		return subcategory.ErrInvalidSubCategoryID
	}
	id = identifier.Normalize(id)

	n, err := s.items.CountBySubCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sub-category: count items: %w", err)
	}
	if n > 0 {
		return subcategory.ErrHasItems
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, subcategory.ErrSubCategoryNotFound) || errors.Is(err, subcategory.ErrHasItems) {
			return err
		}
		return fmt.Errorf("delete sub-category: %w", err)
	}
	return nil
}
