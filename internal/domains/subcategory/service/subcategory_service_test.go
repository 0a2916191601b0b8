package service

import (
	"context"
	"testing"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/item"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/identifier"
	"catalog-backend/internal/testutil/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

type SubCategoryServiceSuite struct {
	suite.Suite

	ctx       context.Context
	store     *memstore.Store
	svc       subcategory.SubCategoryService
	beverages *category.Category
	snacks    *category.Category
}

func TestSubCategoryService(t *testing.T) {
	suite.Run(t, new(SubCategoryServiceSuite))
}

func (s *SubCategoryServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.svc = NewSubCategoryService(s.store.SubCategories(), s.store.Categories(), s.store.Items())

	var err error
	s.beverages, err = s.store.Categories().Create(s.ctx, category.NewCategory("Beverages", "i", "d", category.TaxPolicy{
		Applicable: boolPtr(true),
		Tax:        decPtr(10),
	}))
	s.Require().NoError(err)

	s.snacks, err = s.store.Categories().Create(s.ctx, category.NewCategory("Snacks", "i", "d", category.TaxPolicy{}))
	s.Require().NoError(err)
}

func (s *SubCategoryServiceSuite) create(name string, parent *category.Category, app *bool, tax *decimal.Decimal) *subcategory.SubCategoryResp {
	resp, err := s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{
		Name:             name,
		Image:            "i",
		Description:      "d",
		CategoryID:       parent.ID,
		TaxApplicability: app,
		Tax:              tax,
	})
	s.Require().NoError(err)
	return resp
}

func (s *SubCategoryServiceSuite) TestCreateInheritsParentTax() {
	resp := s.create("Juices", s.beverages, nil, nil)

	s.True(resp.TaxApplicability)
	s.True(decimal.NewFromInt(10).Equal(resp.Tax))
	s.Equal(s.beverages.ID, resp.CategoryID)
	s.Require().NotNil(resp.Category)
	s.Equal("Beverages", resp.Category.Name)
}

func (s *SubCategoryServiceSuite) TestCreateExplicitFalseZeroesTax() {
	resp := s.create("Water", s.beverages, boolPtr(false), nil)

	s.False(resp.TaxApplicability)
	s.True(resp.Tax.IsZero())
}

func (s *SubCategoryServiceSuite) TestCreateKeepsSuppliedTax() {
	resp := s.create("Sodas", s.beverages, nil, decPtr(5))

	s.True(resp.TaxApplicability)
	s.True(decimal.NewFromInt(5).Equal(resp.Tax))
}

func (s *SubCategoryServiceSuite) TestCreateErrors() {
	_, err := s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{Name: "Juices"})
	s.True(apperror.IsValidation(err))
	s.Equal(subcategory.MsgRequiredFields, apperror.MessageOf(err))

	_, err = s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{
		Name: "Juices", Image: "i", Description: "d", CategoryID: identifier.New(),
	})
	s.ErrorIs(err, subcategory.ErrParentNotFound)

	_, err = s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{
		Name: "Juices", Image: "i", Description: "d", CategoryID: "Beverages",
	})
	s.ErrorIs(err, subcategory.ErrParentNotFound)

	_, err = s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{
		Name: "Juices", Image: "i", Description: "d", CategoryID: s.beverages.ID, Tax: decPtr(150),
	})
	s.True(apperror.IsValidation(err))
}

func (s *SubCategoryServiceSuite) TestNameUniquePerCategory() {
	s.create("Specials", s.beverages, nil, nil)

	_, err := s.svc.Create(s.ctx, &subcategory.CreateSubCategoryReq{
		Name: "Specials", Image: "i", Description: "d", CategoryID: s.beverages.ID,
	})
	s.ErrorIs(err, subcategory.ErrDuplicateName)

	// Same name under another category is fine.
	s.create("Specials", s.snacks, nil, nil)
}

func (s *SubCategoryServiceSuite) TestSnapshotSurvivesParentUpdate() {
	resp := s.create("Juices", s.beverages, nil, nil)

	s.beverages.Apply(category.Changes{Tax: category.TaxPolicy{Tax: decPtr(20)}})
	_, err := s.store.Categories().Update(s.ctx, s.beverages)
	s.Require().NoError(err)

	got, err := s.svc.Get(s.ctx, resp.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10).Equal(got.Tax))
}

func (s *SubCategoryServiceSuite) TestListByCategory() {
	s.create("Juices", s.beverages, nil, nil)
	s.create("Sodas", s.beverages, nil, nil)
	s.create("Chips", s.snacks, nil, nil)

	parent, list, err := s.svc.ListByCategory(s.ctx, s.beverages.ID)
	s.Require().NoError(err)
	s.Equal("Beverages", parent.Name)
	s.Require().Len(list, 2)
	s.Equal("Sodas", list[0].Name)

	_, _, err = s.svc.ListByCategory(s.ctx, identifier.New())
	s.ErrorIs(err, category.ErrCategoryNotFound)

	all, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *SubCategoryServiceSuite) TestUpdateMovesToNewParent() {
	resp := s.create("Juices", s.beverages, nil, nil)

	updated, err := s.svc.Update(s.ctx, resp.ID, &subcategory.UpdateSubCategoryReq{CategoryID: strPtr(s.snacks.ID)})
	s.Require().NoError(err)

	s.Equal(s.snacks.ID, updated.CategoryID)
	s.Equal("Snacks", updated.Category.Name)
	// Tax is not re-inherited on a move.
	s.True(updated.TaxApplicability)
	s.True(decimal.NewFromInt(10).Equal(updated.Tax))
}

func (s *SubCategoryServiceSuite) TestUpdateErrors() {
	juices := s.create("Juices", s.beverages, nil, nil)
	s.create("Sodas", s.beverages, nil, nil)
	s.create("Juices", s.snacks, nil, nil)

	_, err := s.svc.Update(s.ctx, "nope", nil)
	s.ErrorIs(err, subcategory.ErrInvalidSubCategoryID)

	_, err = s.svc.Update(s.ctx, identifier.New(), nil)
	s.ErrorIs(err, subcategory.ErrSubCategoryNotFound)

	_, err = s.svc.Update(s.ctx, juices.ID, &subcategory.UpdateSubCategoryReq{CategoryID: strPtr(identifier.New())})
	s.ErrorIs(err, subcategory.ErrNewParentNotFound)

	_, err = s.svc.Update(s.ctx, juices.ID, &subcategory.UpdateSubCategoryReq{Name: strPtr("Sodas")})
	s.ErrorIs(err, subcategory.ErrDuplicateName)

	// Moving next to a sibling with the same name conflicts too.
	_, err = s.svc.Update(s.ctx, juices.ID, &subcategory.UpdateSubCategoryReq{CategoryID: strPtr(s.snacks.ID)})
	s.ErrorIs(err, subcategory.ErrDuplicateName)

	got, err := s.svc.Get(s.ctx, juices.ID)
	s.Require().NoError(err)
	s.Equal(s.beverages.ID, got.CategoryID)
}

func (s *SubCategoryServiceSuite) TestUpdateRefusesMoveWithItems() {
	resp := s.create("Juices", s.beverages, nil, nil)
	s.addItem(resp.ID)

	_, err := s.svc.Update(s.ctx, resp.ID, &subcategory.UpdateSubCategoryReq{CategoryID: strPtr(s.snacks.ID)})
	s.ErrorIs(err, subcategory.ErrMoveWithItems)

	// Editing in place is still allowed.
	updated, err := s.svc.Update(s.ctx, resp.ID, &subcategory.UpdateSubCategoryReq{Description: strPtr("Fresh")})
	s.Require().NoError(err)
	s.Equal("Fresh", updated.Description)
}

func (s *SubCategoryServiceSuite) TestDeleteGuard() {
	resp := s.create("Juices", s.beverages, nil, nil)
	itemID := s.addItem(resp.ID)

	err := s.svc.Delete(s.ctx, resp.ID)
	s.ErrorIs(err, subcategory.ErrHasItems)
	s.True(apperror.IsConflict(err))

	s.Require().NoError(s.store.Items().Delete(s.ctx, itemID))
	s.NoError(s.svc.Delete(s.ctx, resp.ID))
	s.ErrorIs(s.svc.Delete(s.ctx, resp.ID), subcategory.ErrSubCategoryNotFound)
	s.ErrorIs(s.svc.Delete(s.ctx, "Juices"), subcategory.ErrInvalidSubCategoryID)
}

func (s *SubCategoryServiceSuite) addItem(subID string) string {
	sub, err := s.store.SubCategories().GetByID(s.ctx, subID)
	s.Require().NoError(err)

	it, err := s.store.Items().Create(s.ctx, item.NewItem(item.NewItemParams{
		Name: "Orange Juice", Image: "i", Description: "d",
		Category:    s.beverages,
		SubCategory: sub,
		BaseAmount:  decimal.NewFromInt(3),
	}))
	s.Require().NoError(err)
	return it.ID
}

func TestGetByName(t *testing.T) {
	store := memstore.New()
	svc := NewSubCategoryService(store.SubCategories(), store.Categories(), store.Items())
	ctx := context.Background()

	parent, err := store.Categories().Create(ctx, category.NewCategory("Beverages", "i", "d", category.TaxPolicy{}))
	require.NoError(t, err)
	created, err := svc.Create(ctx, &subcategory.CreateSubCategoryReq{
		Name: "Juices", Image: "i", Description: "d", CategoryID: parent.ID,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "JUICES")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, "Teas")
	assert.ErrorIs(t, err, subcategory.ErrSubCategoryNotFound)
}
