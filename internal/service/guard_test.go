package service

import (
	"context"
	"errors"
	"testing"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/storage"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func membership(pid, tenant uuid.UUID, role string, active bool) *models.TenantMembership {
	return &models.TenantMembership{
		PrincipalID: pid,
		TenantID:    tenant,
		Role:        role,
		Active:      active,
	}
}

func TestAuthorize_FullPolicy_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	svc.SetGrantTable(NewGrantTable([]models.PermissionGrant{
		{TenantID: uuid.Nil, Role: "manager", Permissions: []string{"orders.approve"}},
	}))

	// Членство читается один раз и переиспользуется всеми проверками.
	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "manager", true), nil).
		Times(1)

	err := svc.Authorize(context.Background(), pid, tenant, Policy{
		Roles:      []string{"admin", "manager"},
		Permission: "orders.approve",
	})
	require.NoError(t, err)
}

func TestAuthorize_EmptyPolicy_ChecksTenantOnly(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "viewer", true), nil)

	require.NoError(t, svc.Authorize(context.Background(), pid, tenant, Policy{}))
}

func TestAuthorize_NoMembership_Forbidden(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound))

	err := svc.Authorize(context.Background(), uuid.New(), uuid.New(), Policy{Roles: []string{"admin"}})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrForbidden)
}

// Неактивное членство снаружи неотличимо от отсутствующего.
func TestAuthorize_InactiveMembership_Forbidden(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "admin", false), nil)

	err := svc.Authorize(context.Background(), pid, tenant, Policy{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_RoleNotAllowed(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "viewer", true), nil)

	err := svc.Authorize(context.Background(), pid, tenant, Policy{Roles: []string{"admin", "manager"}})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_PermissionMissing(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	svc.SetGrantTable(NewGrantTable([]models.PermissionGrant{
		{TenantID: uuid.Nil, Role: "viewer", Permissions: []string{"orders.read"}},
	}))

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "viewer", true), nil)

	err := svc.Authorize(context.Background(), pid, tenant, Policy{Permission: "orders.approve"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrForbidden)
}

// Проверки обрываются на первом отказе: при отсутствии доступа к тенанту
// роль и разрешение не проверяются (и таблица грантов не нужна вовсе).
func TestAuthorize_ShortCircuitOnTenantDenial(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmtWrap(storage.ErrNotFound)).
		Times(1)

	err := svc.Authorize(context.Background(), uuid.New(), uuid.New(), Policy{
		Roles:      []string{"admin"},
		Permission: "orders.approve",
	})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorize_StorageError_NotForbidden(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	err := svc.Authorize(context.Background(), uuid.New(), uuid.New(), Policy{})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrForbidden)
}

func TestCheckTenantAccess(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "viewer", true), nil)
	require.NoError(t, svc.CheckTenantAccess(context.Background(), pid, tenant))

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(nil, fmtWrap(storage.ErrNotFound))
	require.ErrorIs(t, svc.CheckTenantAccess(context.Background(), pid, tenant), ErrForbidden)
}

func TestCheckRole(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "manager", true), nil)
	require.NoError(t, svc.CheckRole(context.Background(), pid, tenant, "admin", "manager"))

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "viewer", true), nil)
	require.ErrorIs(t, svc.CheckRole(context.Background(), pid, tenant, "admin"), ErrForbidden)
}

func TestCheckPermission(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	pid := uuid.New()
	tenant := uuid.New()

	svc.SetGrantTable(NewGrantTable([]models.PermissionGrant{
		{TenantID: uuid.Nil, Role: "manager", Permissions: []string{"orders.approve"}},
	}))

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "manager", true), nil)
	require.NoError(t, svc.CheckPermission(context.Background(), pid, tenant, "orders.approve"))

	st.EXPECT().MembershipByPrincipalAndTenant(gomock.Any(), pid, tenant).
		Return(membership(pid, tenant, "manager", true), nil)
	require.ErrorIs(t, svc.CheckPermission(context.Background(), pid, tenant, "orders.delete"), ErrForbidden)
}
