package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/identifier"
	"catalog-backend/pkg/logger"
)

type categoryServiceImpl struct {
	repository category.CategoryRepository
	dependents []category.DependentCounter
}

// NewCategoryService wires the category rules. dependents are consulted by
// the delete guard (sub-category and item repositories).
func NewCategoryService(repo category.CategoryRepository, dependents ...category.DependentCounter) category.CategoryService {
	return &categoryServiceImpl{
		repository: repo,
		dependents: dependents,
	}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.CategoryResp, error) {
	if req == nil {
		return nil, apperror.Validation(category.MsgRequiredFields)
	}

	// ========== STEP 1: VALIDATE INPUT ==========
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// ========== STEP 2: UNIQUE NAME ==========
	// The unique constraint is the fallback when two creates race.
	exists, err := s.repository.ExistsByName(ctx, req.Name, "")
	if err != nil {
		return nil, fmt.Errorf("create category: check name: %w", err)
	}
	if exists {
		return nil, category.ErrDuplicateName
	}

	// ========== STEP 3: BUILD + PERSIST ==========
	entity := category.NewCategory(req.Name, req.Image, req.Description, req.TaxPolicy())

	created, err := s.repository.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"id":       created.ID,
		"name":     created.Name,
		"tax_type": string(created.TaxType),
	})

	return category.CategoryToResp(created), nil
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]category.CategoryResp, error) {
	list, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}
	return category.CategoriesToResp(list), nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, ident string) (*category.CategoryResp, error) {
	found, err := identifier.Resolve(ctx, ident, s.repository.GetByID, s.repository.GetByName)
	if err != nil {
		return nil, err
	}
	return category.CategoryToResp(found), nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id string, req *category.UpdateCategoryReq) (*category.CategoryResp, error) {
	if !identifier.IsObjectID(id) {
		return nil, category.ErrInvalidCategoryID
	}
	id = identifier.Normalize(id)

	if req == nil {
		req = &category.UpdateCategoryReq{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Apply(req.Changes())

	if req.Name != nil {
		exists, err := s.repository.ExistsByName(ctx, existing.Name, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("update category: check name: %w", err)
		}
		if exists {
			return nil, category.ErrDuplicateName
		}
	}

	updated, err := s.repository.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	return category.CategoryToResp(updated), nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id string) error {
	if !identifier.IsObjectID(id) {
		return category.ErrInvalidCategoryID
	}
	id = identifier.Normalize(id)

	// Count-based guard evaluated at call time. A child created between
	// the count and the delete is caught by the foreign key instead.
	for _, counter := range s.dependents {
		n, err := counter.CountByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("delete category: count dependents: %w", err)
		}
		if n > 0 {
			logger.Info("category delete refused", map[string]interface{}{
				"id":         id,
				"dependents": n,
			})
			return category.ErrHasDependents
		}
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) || errors.Is(err, category.ErrHasDependents) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}

	return nil
}
