// Package memstore is an in-memory stand-in for the Postgres repositories.
// It mirrors their observable behaviour: newest-first lists, oldest-first
// name lookups, populated parent references and the same sentinel errors
// for missing rows, duplicate names and foreign keys.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/item"
	"catalog-backend/internal/domains/subcategory"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	err error

	categories    map[string]category.Category
	subCategories map[string]subcategory.SubCategory
	items         map[string]item.Item
	order         map[string]int64
}

func New() *Store {
	return &Store{
		categories:    make(map[string]category.Category),
		subCategories: make(map[string]subcategory.SubCategory),
		items:         make(map[string]item.Item),
		order:         make(map[string]int64),
	}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Categories() *Categories       { return &Categories{s} }
func (s *Store) SubCategories() *SubCategories { return &SubCategories{s} }
func (s *Store) Items() *Items                 { return &Items{s} }

func (s *Store) touch(id string) {
	if _, ok := s.order[id]; !ok {
		s.seq++
		s.order[id] = s.seq
	}
}

// newestFirst sorts ids by insertion, latest first.
func (s *Store) newestFirst(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] > s.order[ids[j]] })
}

// oldestMatch returns the first-inserted id whose name equals name
// case-insensitively.
func (s *Store) oldestMatch(names map[string]string, name string) (string, bool) {
	var (
		best  string
		found bool
	)
	for id, n := range names {
		if !strings.EqualFold(n, name) {
			continue
		}
		if !found || s.order[id] < s.order[best] {
			best, found = id, true
		}
	}
	return best, found
}

// ============================================================
// CATEGORIES
// ============================================================

type Categories struct{ s *Store }

var (
	_ category.CategoryRepository = (*Categories)(nil)
	_ subcategory.CategoryReader  = (*Categories)(nil)
	_ item.CategoryReader         = (*Categories)(nil)
)

func (r *Categories) Create(_ context.Context, c *category.Category) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return nil, category.ErrDuplicateName
		}
	}
	r.s.categories[c.ID] = *c
	r.s.touch(c.ID)

	out := *c
	return &out, nil
}

func (r *Categories) GetByID(_ context.Context, id string) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	c, ok := r.s.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *Categories) GetByName(_ context.Context, name string) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	names := make(map[string]string, len(r.s.categories))
	for id, c := range r.s.categories {
		names[id] = c.Name
	}
	id, ok := r.s.oldestMatch(names, name)
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	c := r.s.categories[id]
	return &c, nil
}

func (r *Categories) List(_ context.Context) ([]category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	ids := make([]string, 0, len(r.s.categories))
	for id := range r.s.categories {
		ids = append(ids, id)
	}
	r.s.newestFirst(ids)

	out := make([]category.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.categories[id])
	}
	return out, nil
}

func (r *Categories) Update(_ context.Context, c *category.Category) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	if _, ok := r.s.categories[c.ID]; !ok {
		return nil, category.ErrCategoryNotFound
	}
	for id, existing := range r.s.categories {
		if id != c.ID && existing.Name == c.Name {
			return nil, category.ErrDuplicateName
		}
	}
	r.s.categories[c.ID] = *c

	out := *c
	return &out, nil
}

func (r *Categories) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}

	if _, ok := r.s.categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	for _, sub := range r.s.subCategories {
		if sub.CategoryID == id {
			return category.ErrHasDependents
		}
	}
	for _, it := range r.s.items {
		if it.CategoryID == id {
			return category.ErrHasDependents
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *Categories) ExistsByID(_ context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return false, r.s.err
	}

	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *Categories) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return false, r.s.err
	}

	for id, c := range r.s.categories {
		if id != excludeID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ============================================================
// SUB-CATEGORIES
// ============================================================

type SubCategories struct{ s *Store }

var (
	_ subcategory.SubCategoryRepository = (*SubCategories)(nil)
	_ category.DependentCounter         = (*SubCategories)(nil)
	_ item.SubCategoryReader            = (*SubCategories)(nil)
)

// withRef is called with the lock held.
func (r *SubCategories) withRef(sub subcategory.SubCategory) *subcategory.SubCategory {
	if c, ok := r.s.categories[sub.CategoryID]; ok {
		sub.Category = c.Ref()
	}
	return &sub
}

func (r *SubCategories) checkWrite(sub *subcategory.SubCategory, parentMissing error) error {
	if _, ok := r.s.categories[sub.CategoryID]; !ok {
		return parentMissing
	}
	for id, existing := range r.s.subCategories {
		if id != sub.ID && existing.CategoryID == sub.CategoryID && existing.Name == sub.Name {
			return subcategory.ErrDuplicateName
		}
	}
	return nil
}

func (r *SubCategories) Create(_ context.Context, sub *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	if err := r.checkWrite(sub, subcategory.ErrParentNotFound); err != nil {
		return nil, err
	}
	stored := *sub
	stored.Category = nil
	r.s.subCategories[sub.ID] = stored
	r.s.touch(sub.ID)

	return r.withRef(stored), nil
}

func (r *SubCategories) GetByID(_ context.Context, id string) (*subcategory.SubCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	sub, ok := r.s.subCategories[id]
	if !ok {
		return nil, subcategory.ErrSubCategoryNotFound
	}
	return r.withRef(sub), nil
}

func (r *SubCategories) GetByName(_ context.Context, name string) (*subcategory.SubCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	names := make(map[string]string, len(r.s.subCategories))
	for id, sub := range r.s.subCategories {
		names[id] = sub.Name
	}
	id, ok := r.s.oldestMatch(names, name)
	if !ok {
		return nil, subcategory.ErrSubCategoryNotFound
	}
	return r.withRef(r.s.subCategories[id]), nil
}

func (r *SubCategories) filter(keep func(subcategory.SubCategory) bool) ([]subcategory.SubCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	ids := make([]string, 0, len(r.s.subCategories))
	for id, sub := range r.s.subCategories {
		if keep(sub) {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)

	out := make([]subcategory.SubCategory, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.withRef(r.s.subCategories[id]))
	}
	return out, nil
}

func (r *SubCategories) List(_ context.Context) ([]subcategory.SubCategory, error) {
	return r.filter(func(subcategory.SubCategory) bool { return true })
}

func (r *SubCategories) ListByCategory(_ context.Context, categoryID string) ([]subcategory.SubCategory, error) {
	return r.filter(func(sub subcategory.SubCategory) bool { return sub.CategoryID == categoryID })
}

func (r *SubCategories) Update(_ context.Context, sub *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	if _, ok := r.s.subCategories[sub.ID]; !ok {
		return nil, subcategory.ErrSubCategoryNotFound
	}
	if err := r.checkWrite(sub, subcategory.ErrNewParentNotFound); err != nil {
		return nil, err
	}
	stored := *sub
	stored.Category = nil
	r.s.subCategories[sub.ID] = stored

	return r.withRef(stored), nil
}

func (r *SubCategories) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}

	if _, ok := r.s.subCategories[id]; !ok {
		return subcategory.ErrSubCategoryNotFound
	}
	for _, it := range r.s.items {
		if it.SubCategoryID != nil && *it.SubCategoryID == id {
			return subcategory.ErrHasItems
		}
	}
	delete(r.s.subCategories, id)
	return nil
}

func (r *SubCategories) ExistsByNameInCategory(_ context.Context, name, categoryID, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return false, r.s.err
	}

	for id, sub := range r.s.subCategories {
		if id != excludeID && sub.CategoryID == categoryID && sub.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *SubCategories) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return 0, r.s.err
	}

	var n int64
	for _, sub := range r.s.subCategories {
		if sub.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// ============================================================
// ITEMS
// ============================================================

type Items struct{ s *Store }

var (
	_ item.ItemRepository       = (*Items)(nil)
	_ category.DependentCounter = (*Items)(nil)
	_ subcategory.ItemCounter   = (*Items)(nil)
)

// withRefs is called with the lock held.
func (r *Items) withRefs(it item.Item) *item.Item {
	if c, ok := r.s.categories[it.CategoryID]; ok {
		it.Category = c.Ref()
	}
	it.SubCategory = nil
	if it.SubCategoryID != nil {
		if sub, ok := r.s.subCategories[*it.SubCategoryID]; ok {
			it.SubCategory = sub.Ref()
		}
	}
	return &it
}

func (r *Items) checkWrite(it *item.Item) error {
	if _, ok := r.s.categories[it.CategoryID]; !ok {
		return category.ErrCategoryNotFound
	}
	if it.SubCategoryID != nil {
		if _, ok := r.s.subCategories[*it.SubCategoryID]; !ok {
			return item.ErrSubCategoryMismatch
		}
	}
	return nil
}

func store(it *item.Item) item.Item {
	stored := *it
	stored.Category = nil
	stored.SubCategory = nil
	if it.SubCategoryID != nil {
		id := *it.SubCategoryID
		stored.SubCategoryID = &id
	}
	return stored
}

func (r *Items) Create(_ context.Context, it *item.Item) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	if err := r.checkWrite(it); err != nil {
		return nil, err
	}
	stored := store(it)
	r.s.items[it.ID] = stored
	r.s.touch(it.ID)

	return r.withRefs(stored), nil
}

func (r *Items) GetByID(_ context.Context, id string) (*item.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	it, ok := r.s.items[id]
	if !ok {
		return nil, item.ErrItemNotFound
	}
	return r.withRefs(it), nil
}

func (r *Items) GetByName(_ context.Context, name string) (*item.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	names := make(map[string]string, len(r.s.items))
	for id, it := range r.s.items {
		names[id] = it.Name
	}
	id, ok := r.s.oldestMatch(names, name)
	if !ok {
		return nil, item.ErrItemNotFound
	}
	return r.withRefs(r.s.items[id]), nil
}

func (r *Items) filter(keep func(item.Item) bool) ([]item.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	ids := make([]string, 0, len(r.s.items))
	for id, it := range r.s.items {
		if keep(it) {
			ids = append(ids, id)
		}
	}
	r.s.newestFirst(ids)

	out := make([]item.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.withRefs(r.s.items[id]))
	}
	return out, nil
}

func (r *Items) List(_ context.Context) ([]item.Item, error) {
	return r.filter(func(item.Item) bool { return true })
}

func (r *Items) ListByCategory(_ context.Context, categoryID string) ([]item.Item, error) {
	return r.filter(func(it item.Item) bool { return it.CategoryID == categoryID })
}

func (r *Items) ListBySubCategory(_ context.Context, subCategoryID string) ([]item.Item, error) {
	return r.filter(func(it item.Item) bool {
		return it.SubCategoryID != nil && *it.SubCategoryID == subCategoryID
	})
}

func (r *Items) Search(_ context.Context, name string) ([]item.Item, error) {
	needle := strings.ToLower(name)
	return r.filter(func(it item.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), needle)
	})
}

func (r *Items) Update(_ context.Context, it *item.Item) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}

	if _, ok := r.s.items[it.ID]; !ok {
		return nil, item.ErrItemNotFound
	}
	if err := r.checkWrite(it); err != nil {
		return nil, err
	}
	stored := store(it)
	r.s.items[it.ID] = stored

	return r.withRefs(stored), nil
}

func (r *Items) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}

	if _, ok := r.s.items[id]; !ok {
		return item.ErrItemNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *Items) count(keep func(item.Item) bool) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.err != nil {
		return 0, r.s.err
	}

	var n int64
	for _, it := range r.s.items {
		if keep(it) {
			n++
		}
	}
	return n, nil
}

func (r *Items) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	return r.count(func(it item.Item) bool { return it.CategoryID == categoryID })
}

func (r *Items) CountBySubCategory(_ context.Context, subCategoryID string) (int64, error) {
	return r.count(func(it item.Item) bool {
		return it.SubCategoryID != nil && *it.SubCategoryID == subCategoryID
	})
}
