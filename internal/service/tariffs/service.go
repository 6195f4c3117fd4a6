package tariffs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
	tariffRepo "github.com/m04kA/SMC-ParkingFeeService/internal/infra/storage/tariff"
	"github.com/m04kA/SMC-ParkingFeeService/internal/service/tariffs/models"
)

// Service сервис администрирования тарифных слотов
// Единственный писатель тарифной конфигурации: каждая запись проверяет
// инвариант непересечения внутри SERIALIZABLE транзакции
type Service struct {
	tariffRepo TariffRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(
	tariffRepo TariffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tariffRepo: tariffRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetSchedule возвращает активные слоты тарифного плана, сгруппированные по дням недели
func (s *Service) GetSchedule(ctx context.Context, req *models.GetTariffsRequest) (*models.TariffScheduleResponse, error) {
	canonicalPlan, model, err := domain.ResolveRateModel(req.RatePlan)
	if err != nil {
		s.logger.Warn("GetSchedule: unknown rate plan %q", req.RatePlan)
		return nil, ErrUnknownRatePlan
	}

	var vehicleType *domain.VehicleType
	if req.VehicleType != nil {
		vt := domain.VehicleType(*req.VehicleType)
		if !vt.IsValid() {
			s.logger.Warn("GetSchedule: unknown vehicle type %q", *req.VehicleType)
			return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, *req.VehicleType)
		}
		vehicleType = &vt
	}

	asOf := time.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	slots, err := s.tariffRepo.ListByRatePlan(ctx, canonicalPlan, vehicleType, asOf)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for plan=%s: %v", canonicalPlan, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: fetched %d slots for plan=%s asOf=%s",
		len(slots), canonicalPlan, asOf.Format(time.RFC3339))

	return &models.TariffScheduleResponse{
		RatePlan:  canonicalPlan,
		RateModel: string(model),
		AsOf:      asOf.Format(time.RFC3339),
		Days:      models.GroupByWeekday(slots),
	}, nil
}

// Create создает новый тарифный слот
// Запись атомарна: проверка пересечений и вставка выполняются в одной
// SERIALIZABLE транзакции, конкурирующая запись получит ErrTariffConflict
// или сериализуется на FOR UPDATE
func (s *Service) Create(ctx context.Context, payload *models.SlotPayload) (*models.SlotResponse, error) {
	slot, err := s.toDomainSlot(payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: creating slot plan=%s vehicle=%s day=%s window=%s-%s",
		slot.RatePlan, slot.VehicleType, models.FromDomainWeekday(slot.DayOfWeek),
		slot.WindowFrom, slot.WindowTo)

	var created *domain.TariffSlot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.checkNoConflict(ctx, slot, 0); err != nil {
			return err
		}

		created, err = s.tariffRepo.Create(ctx, slot)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTariffConflict) {
			s.logger.Warn("Create: conflict for plan=%s vehicle=%s day=%s",
				slot.RatePlan, slot.VehicleType, models.FromDomainWeekday(slot.DayOfWeek))
			return nil, ErrTariffConflict
		}
		s.logger.Error("Create: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created slot id=%d", created.ID)
	return models.FromDomainSlot(created), nil
}

// Update обновляет тарифный слот целиком с той же проверкой инварианта
func (s *Service) Update(ctx context.Context, slotID int64, payload *models.SlotPayload) (*models.SlotResponse, error) {
	slot, err := s.toDomainSlot(payload)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID

	s.logger.Info("Update: updating slot id=%d", slotID)

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.tariffRepo.GetByID(ctx, slotID); err != nil {
			if errors.Is(err, tariffRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := s.checkNoConflict(ctx, slot, slotID); err != nil {
			return err
		}

		if err := s.tariffRepo.Update(ctx, slot); err != nil {
			if errors.Is(err, tariffRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			s.logger.Warn("Update: slot id=%d not found", slotID)
		case errors.Is(err, ErrTariffConflict):
			s.logger.Warn("Update: conflict for slot id=%d", slotID)
		default:
			s.logger.Error("Update: transaction failed for slot id=%d: %v", slotID, err)
		}
		return nil, err
	}

	updated, err := s.tariffRepo.GetByID(ctx, slotID)
	if err != nil {
		s.logger.Error("Update: failed to re-read slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated slot id=%d", slotID)
	return models.FromDomainSlot(updated), nil
}

// Retire закрывает диапазон действия слота
// Слот перестает участвовать в расчётах для сессий после effectiveEnd
func (s *Service) Retire(ctx context.Context, slotID int64, req *models.RetireSlotRequest) (*models.SlotResponse, error) {
	effectiveEnd := time.Now()
	if req.EffectiveEnd != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EffectiveEnd)
		if err != nil {
			s.logger.Warn("Retire: invalid effectiveEnd for slot id=%d: %v", slotID, err)
			return nil, fmt.Errorf("%w: effectiveEnd: expected RFC 3339", ErrInvalidInput)
		}
		effectiveEnd = parsed
	}

	s.logger.Info("Retire: retiring slot id=%d at %s", slotID, effectiveEnd.Format(time.RFC3339))

	slot, err := s.tariffRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, tariffRepo.ErrSlotNotFound) {
			s.logger.Warn("Retire: slot id=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Retire: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Retire - repository error: %v", ErrInternal, err)
	}

	if !effectiveEnd.After(slot.EffectiveStart) {
		s.logger.Warn("Retire: effectiveEnd before effectiveStart for slot id=%d", slotID)
		return nil, fmt.Errorf("%w: effectiveEnd must be after effectiveStart", ErrInvalidInput)
	}

	if err := s.tariffRepo.Retire(ctx, slotID, effectiveEnd); err != nil {
		if errors.Is(err, tariffRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Retire: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Retire - repository error: %v", ErrInternal, err)
	}

	retired, err := s.tariffRepo.GetByID(ctx, slotID)
	if err != nil {
		s.logger.Error("Retire: failed to re-read slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: Retire - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Retire: successfully retired slot id=%d", slotID)
	return models.FromDomainSlot(retired), nil
}

// Вспомогательные методы

// toDomainSlot валидирует payload и мапит ошибки валидации на ошибки сервиса
func (s *Service) toDomainSlot(payload *models.SlotPayload) (*domain.TariffSlot, error) {
	slot, err := payload.ToDomainSlot()
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRatePlan) {
			s.logger.Warn("toDomainSlot: unknown rate plan %q", payload.RatePlan)
			return nil, ErrUnknownRatePlan
		}
		s.logger.Warn("toDomainSlot: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return slot, nil
}

// checkNoConflict проверяет, что slot не пересекается ни с одним активным слотом
// той же тройки; excludeID исключает сам обновляемый слот
func (s *Service) checkNoConflict(ctx context.Context, slot *domain.TariffSlot, excludeID int64) error {
	existing, err := s.tariffRepo.FindByTriple(ctx, slot.VehicleType, slot.RatePlan, slot.DayOfWeek)
	if err != nil {
		return fmt.Errorf("%w: checkNoConflict - repository error: %v", ErrInternal, err)
	}

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if slot.ConflictsWith(other) {
			return fmt.Errorf("%w: slot id=%d window=%s-%s", ErrTariffConflict,
				other.ID, other.WindowFrom, other.WindowTo)
		}
	}
	return nil
}
