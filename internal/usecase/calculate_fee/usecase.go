package calculate_fee

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// UseCase use case расчёта платы за парковку
// Чистая функция от запроса и снимка тарифов: одинаковый вход всегда даёт
// одинаковый результат, никакого разделяемого состояния между вызовами
type UseCase struct {
	tariffRepo TariffRepository
	location   *time.Location
	currency   string
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
// location определяет границы календарных суток при разбиении сессии
func NewUseCase(
	tariffRepo TariffRepository,
	location *time.Location,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		tariffRepo: tariffRepo,
		location:   location,
		currency:   currency,
		logger:     logger,
	}
}

// Execute выполняет расчёт платы за сессию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculateFee: vehicle=%s, plan=%s, entry=%s, exit=%s",
		req.VehicleType, req.RatePlan,
		req.EntryTime.Format(time.RFC3339), req.ExitTime.Format(time.RFC3339))

	// 1. Валидация сессии
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculateFee: validation failed: %v", err)
		return nil, err
	}

	// 2. Каноническое имя плана и модель тарификации
	// Подсказка клиента игнорируется: модель вычисляется заново по каталогу
	canonicalPlan, rateModel, err := domain.ResolveRateModel(req.RatePlan)
	if err != nil {
		uc.logger.Warn("CalculateFee: unknown rate plan %q", req.RatePlan)
		return nil, ErrUnknownRatePlan
	}
	if req.RateModelHint != nil && *req.RateModelHint != string(rateModel) {
		uc.logger.Warn("CalculateFee: client hint %q differs from resolved model %q for plan=%s",
			*req.RateModelHint, rateModel, canonicalPlan)
	}

	// 3. Снимок тарифных слотов, активных на момент въезда
	slots, err := uc.tariffRepo.FindSlots(ctx, domain.VehicleType(req.VehicleType), canonicalPlan, req.EntryTime)
	if err != nil {
		uc.logger.Error("CalculateFee: failed to fetch tariff slots for plan=%s: %v", canonicalPlan, err)
		return nil, fmt.Errorf("%w: failed to fetch tariff slots: %v", ErrInternal, err)
	}

	// 4. Разбиение сессии на сегменты по суткам и тарифным окнам
	segments, err := splitSession(req.EntryTime, req.ExitTime, slots, uc.location)
	if err != nil {
		uc.logger.Warn("CalculateFee: split failed for plan=%s vehicle=%s: %v",
			canonicalPlan, req.VehicleType, err)
		return nil, err
	}

	// 5. Тарификация сегментов
	total := accumulateFee(segments)

	uc.logger.Info("CalculateFee: plan=%s model=%s segments=%d total=%s %s",
		canonicalPlan, rateModel, len(segments), total.StringFixed(2), uc.currency)
	for i := range segments {
		seg := &segments[i]
		uc.logger.Info("CalculateFee: segment %d: %s - %s slot=%d window=%s-%s",
			i, seg.Start.Format(time.RFC3339), seg.End.Format(time.RFC3339),
			seg.Slot.ID, seg.Slot.WindowFrom, seg.Slot.WindowTo)
	}

	return &Response{
		TotalFee:  total,
		Currency:  uc.currency,
		RatePlan:  canonicalPlan,
		RateModel: rateModel,
		Segments:  segments,
	}, nil
}
