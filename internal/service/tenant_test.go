package service

import (
	"testing"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Порядок разрешения тенанта: явный сигнал > маршрут > дефолт из claims.
func TestResolveTenant_Precedence(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	explicit := uuid.New()
	route := uuid.New()
	def := uuid.New()

	claims := &models.Claims{DefaultTenantID: def}

	tests := []struct {
		name    string
		signals TenantSignals
		claims  *models.Claims
		want    uuid.UUID
		wantErr error
	}{
		{
			name:    "explicit wins over route and default",
			signals: TenantSignals{ExplicitTenantID: explicit, RouteTenantID: route},
			claims:  claims,
			want:    explicit,
		},
		{
			name:    "route wins over default",
			signals: TenantSignals{RouteTenantID: route},
			claims:  claims,
			want:    route,
		},
		{
			name:   "default from claims",
			claims: claims,
			want:   def,
		},
		{
			name:    "explicit alone",
			signals: TenantSignals{ExplicitTenantID: explicit},
			want:    explicit,
		},
		{
			name:    "no signals at all",
			claims:  &models.Claims{},
			wantErr: ErrTenantUnresolved,
		},
		{
			name:    "nil claims without signals",
			wantErr: ErrTenantUnresolved,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.ResolveTenant(tc.signals, tc.claims)
			if tc.wantErr != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// Разрешение тенанта не проверяет членство: явный сигнал принимается даже
// для тенанта, где у principal нет ролей. Доступ проверяет Authorize.
func TestResolveTenant_DoesNotCheckMembership(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	foreign := uuid.New()
	claims := &models.Claims{
		DefaultTenantID: uuid.New(),
		TenantRoles:     map[uuid.UUID]string{uuid.New(): "viewer"},
	}

	got, err := svc.ResolveTenant(TenantSignals{ExplicitTenantID: foreign}, claims)
	require.NoError(t, err)
	require.Equal(t, foreign, got)
}
