package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/domain/agreement"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/samber/lo"
)

// AudienceRule selects users who should hear about an agreement
type AudienceRule interface {
	Name() string
	Select(ctx context.Context, a *agreement.Agreement) ([]*user.User, error)
}

// AssignedUsersRule selects the users explicitly assigned to the agreement
type AssignedUsersRule struct {
	Users user.Repository
}

func (AssignedUsersRule) Name() string { return "assigned_users" }

func (r AssignedUsersRule) Select(ctx context.Context, a *agreement.Agreement) ([]*user.User, error) {
	if len(a.AssignedUserIDs) == 0 {
		return nil, nil
	}
	return r.Users.GetByIDs(ctx, a.AssignedUserIDs)
}

// CreatorRule selects the user that created the agreement
type CreatorRule struct {
	Users user.Repository
}

func (CreatorRule) Name() string { return "creator" }

func (r CreatorRule) Select(ctx context.Context, a *agreement.Agreement) ([]*user.User, error) {
	if a.CreatorID == nil || *a.CreatorID == "" {
		return nil, nil
	}

	u, err := r.Users.GetByID(ctx, *a.CreatorID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return []*user.User{u}, nil
}

// DepartmentMembersRule selects users whose home department owns the agreement
type DepartmentMembersRule struct {
	Users user.Repository
}

func (DepartmentMembersRule) Name() string { return "department_members" }

func (r DepartmentMembersRule) Select(ctx context.Context, a *agreement.Agreement) ([]*user.User, error) {
	if !a.HasDepartment() {
		return nil, nil
	}
	return r.Users.ListByDepartment(ctx, *a.DepartmentID)
}

// DepartmentPermissionRule selects users granted a permission on the owning department
type DepartmentPermissionRule struct {
	Users user.Repository
}

func (DepartmentPermissionRule) Name() string { return "department_permission" }

func (r DepartmentPermissionRule) Select(ctx context.Context, a *agreement.Agreement) ([]*user.User, error) {
	if !a.HasDepartment() {
		return nil, nil
	}
	return r.Users.ListByDepartmentPermission(ctx, *a.DepartmentID)
}

// ExecutiveRule selects every member of an executive department
type ExecutiveRule struct {
	Users user.Repository
}

func (ExecutiveRule) Name() string { return "executive" }

func (r ExecutiveRule) Select(ctx context.Context, _ *agreement.Agreement) ([]*user.User, error) {
	return r.Users.ListExecutives(ctx)
}

// AudienceResolver unions the users selected by its rules, deduplicated by id
type AudienceResolver struct {
	rules  []AudienceRule
	logger *logger.Logger
}

func NewAudienceResolver(users user.Repository, logger *logger.Logger) *AudienceResolver {
	return NewAudienceResolverWithRules(logger,
		AssignedUsersRule{Users: users},
		CreatorRule{Users: users},
		DepartmentMembersRule{Users: users},
		DepartmentPermissionRule{Users: users},
		ExecutiveRule{Users: users},
	)
}

func NewAudienceResolverWithRules(logger *logger.Logger, rules ...AudienceRule) *AudienceResolver {
	return &AudienceResolver{rules: rules, logger: logger}
}

// Resolve returns the audience in rule order. An empty audience is not an error.
func (r *AudienceResolver) Resolve(ctx context.Context, a *agreement.Agreement) ([]*user.User, error) {
	var all []*user.User
	for _, rule := range r.rules {
		users, err := rule.Select(ctx, a)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Failed to resolve %s audience", rule.Name()).
				WithReportableDetails(map[string]any{
					"agreement_id": a.ID,
					"rule":         rule.Name(),
				}).
				Mark(ierr.ErrDatabase)
		}
		all = append(all, users...)
	}

	audience := lo.UniqBy(lo.Compact(all), func(u *user.User) string { return u.ID })
	r.logger.Debugw("resolved agreement audience",
		"agreement_id", a.ID,
		"candidates", len(all),
		"audience", len(audience),
	)
	return audience, nil
}

// emailsOf returns the addresses of active users
func emailsOf(users []*user.User) []string {
	return lo.Uniq(lo.FilterMap(users, func(u *user.User, _ int) (string, bool) {
		return u.Email, u.IsActive && u.Email != ""
	}))
}
