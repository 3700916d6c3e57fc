// internal/repository/collections.go
package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/konnethq/konnet/internal/model"
)

// organizationColumns is the filter/sort/select allow-list for the
// organizations collection.
var organizationColumns = map[string]bool{
	"id": true, "name": true, "username": true, "email": true,
	"address": true, "state": true, "city": true, "country": true,
	"phone": true, "created_at": true, "updated_at": true,
}

// memberColumns is the filter/sort/select allow-list for the members
// collection.
var memberColumns = map[string]bool{
	"id": true, "first_name": true, "last_name": true, "email": true,
	"phone": true, "gender": true, "occupation": true, "state_of_origin": true,
	"address": true, "state": true, "city": true, "country": true,
	"created_at": true, "updated_at": true,
}

// List runs the advanced query engine over the organizations collection.
func (r *OrganizationRepository) List(ctx context.Context, raw url.Values) (*ListResult[model.Organization], error) {
	return List[model.Organization](ctx, r.db, Collection{Columns: organizationColumns}, raw)
}

// List runs the advanced query engine over the members collection, scoped
// to one organization. The scoping predicate takes precedence over any
// user-supplied filter on the membership field.
func (r *MemberRepository) List(ctx context.Context, orgID uuid.UUID, raw url.Values) (*ListResult[model.Member], error) {
	col := Collection{
		Columns: memberColumns,
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("?::uuid = ANY(memberships)", orgID.String())
		},
		ScopedColumns: map[string]bool{"memberships": true, "organizations": true},
	}
	return List[model.Member](ctx, r.db, col, raw)
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds members whose name, state or occupation matches the term,
// restricted to the given organizations. Sort and pagination parameters
// follow the same rules as the listing engine.
func (r *MemberRepository) Search(ctx context.Context, term string, orgIDs []uuid.UUID, raw url.Values) (*ListResult[model.Member], error) {
	plan := buildPlan(Collection{Columns: memberColumns}, raw)

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting members: %w", err)
	}

	pattern := "%" + escapeLike.Replace(term) + "%"
	q := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("(first_name ILIKE ? OR last_name ILIKE ? OR state ILIKE ? OR occupation ILIKE ?)",
			pattern, pattern, pattern, pattern).
		Where("memberships && ?::uuid[]", model.UUIDArray(orgIDs))

	var items []model.Member
	if err := q.Order(plan.orderBy).Offset(plan.offset).Limit(plan.limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("searching members: %w", err)
	}

	return &ListResult[model.Member]{
		Items:      items,
		Count:      len(items),
		Pagination: paginate(plan.page, plan.limit, total),
	}, nil
}
