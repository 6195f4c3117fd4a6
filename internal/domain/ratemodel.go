package domain

import (
	"errors"
	"sort"
	"strings"
)

// RateModel is one of the closed set of billing buckets every rate plan maps into
type RateModel string

const (
	ModelComprehensive RateModel = "Comprehensive"
	ModelBlock2Special RateModel = "Block2Special"
	ModelStaffEstate   RateModel = "StaffEstate"
	ModelClass1        RateModel = "Class1"
)

// ErrUnknownRatePlan возвращается, когда тарифный план отсутствует в каталоге
var ErrUnknownRatePlan = errors.New("unknown rate plan")

// rateModelCatalog статическая таблица тарифный план -> модель тарификации
// Каталог закрытый: план, которого здесь нет, не доходит до расчёта
var rateModelCatalog = map[string]RateModel{
	"Hourly":           ModelComprehensive,
	"Daily":            ModelComprehensive,
	"Block1":           ModelComprehensive,
	"Block2":           ModelBlock2Special,
	"Block2 Overnight": ModelBlock2Special,
	"Staff Estate A":   ModelStaffEstate,
	"Staff Estate B":   ModelStaffEstate,
	"Class 1":          ModelClass1,
	"Class 1 Reserved": ModelClass1,
}

// ResolveRateModel maps a client-supplied plan name to its canonical name and
// rate model. Lookup is exact first, then case-insensitive after trimming,
// so the canonical name returned is always the catalog's spelling.
func ResolveRateModel(ratePlan string) (string, RateModel, error) {
	if model, ok := rateModelCatalog[ratePlan]; ok {
		return ratePlan, model, nil
	}

	trimmed := strings.TrimSpace(ratePlan)
	for name, model := range rateModelCatalog {
		if strings.EqualFold(name, trimmed) {
			return name, model, nil
		}
	}

	return "", "", ErrUnknownRatePlan
}

// RatePlanInfo запись каталога тарифных планов
type RatePlanInfo struct {
	RatePlan  string
	RateModel RateModel
}

// RatePlanCatalog returns all known rate plans with their models, sorted by name
func RatePlanCatalog() []RatePlanInfo {
	catalog := make([]RatePlanInfo, 0, len(rateModelCatalog))
	for name, model := range rateModelCatalog {
		catalog = append(catalog, RatePlanInfo{RatePlan: name, RateModel: model})
	}
	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].RatePlan < catalog[j].RatePlan
	})
	return catalog
}
