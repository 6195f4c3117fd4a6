package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRateModel(t *testing.T) {
	tests := []struct {
		name      string
		ratePlan  string
		wantPlan  string
		wantModel RateModel
		wantErr   bool
	}{
		{name: "exact match", ratePlan: "Hourly", wantPlan: "Hourly", wantModel: ModelComprehensive},
		{name: "exact match multiword", ratePlan: "Block2 Overnight", wantPlan: "Block2 Overnight", wantModel: ModelBlock2Special},
		{name: "case insensitive", ratePlan: "hourly", wantPlan: "Hourly", wantModel: ModelComprehensive},
		{name: "trims whitespace", ratePlan: "  class 1  ", wantPlan: "Class 1", wantModel: ModelClass1},
		{name: "staff estate", ratePlan: "Staff Estate B", wantPlan: "Staff Estate B", wantModel: ModelStaffEstate},
		{name: "unknown plan", ratePlan: "Weekend Special", wantErr: true},
		{name: "empty plan", ratePlan: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, model, err := ResolveRateModel(tt.ratePlan)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRatePlan)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantPlan, plan)
			require.Equal(t, tt.wantModel, model)
		})
	}
}

func TestRatePlanCatalog(t *testing.T) {
	catalog := RatePlanCatalog()
	require.Len(t, catalog, 9)

	// Каталог отсортирован по имени плана
	for i := 1; i < len(catalog); i++ {
		require.Less(t, catalog[i-1].RatePlan, catalog[i].RatePlan)
	}

	// Каждый план каталога резолвится в самого себя
	for _, info := range catalog {
		plan, model, err := ResolveRateModel(info.RatePlan)
		require.NoError(t, err)
		require.Equal(t, info.RatePlan, plan)
		require.Equal(t, info.RateModel, model)
	}
}
