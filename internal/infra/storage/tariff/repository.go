package tariff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingFeeService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"vehicle_type",
	"rate_plan",
	"day_of_week",
	"window_from",
	"window_to",
	"every_minutes",
	"step_fee",
	"first_step_fee",
	"grace_minutes",
	"min_charge",
	"max_charge",
	"effective_start",
	"effective_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий тарифных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тарифный слот
// Проверка инварианта непересечения выполняется сервисом внутри транзакции,
// поэтому Create сам по себе ничего не проверяет
func (r *Repository) Create(ctx context.Context, slot *domain.TariffSlot) (*domain.TariffSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tariff_slots").
		Columns(
			"vehicle_type",
			"rate_plan",
			"day_of_week",
			"window_from",
			"window_to",
			"every_minutes",
			"step_fee",
			"first_step_fee",
			"grace_minutes",
			"min_charge",
			"max_charge",
			"effective_start",
			"effective_end",
		).
		Values(
			slot.VehicleType,
			slot.RatePlan,
			int(slot.DayOfWeek),
			slot.WindowFrom,
			slot.WindowTo,
			slot.EveryMinutes,
			slot.StepFee,
			slot.FirstStepFee,
			slot.GraceMinutes,
			slot.MinCharge,
			slot.MaxCharge,
			slot.EffectiveStart,
			slot.EffectiveEnd,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает тарифный слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TariffSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("tariff_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// FindSlots возвращает все слоты (vehicle type, rate plan), активные на момент asOf
// Это читающая граница движка расчёта: максимум один слот на день недели и окно
func (r *Repository) FindSlots(ctx context.Context, vehicleType domain.VehicleType, ratePlan string, asOf time.Time) ([]*domain.TariffSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("tariff_slots").
		Where(squirrel.Eq{"vehicle_type": vehicleType}).
		Where(squirrel.Eq{"rate_plan": ratePlan}).
		Where(squirrel.LtOrEq{"effective_start": asOf}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_end": nil},
			squirrel.Gt{"effective_end": asOf},
		}).
		OrderBy("day_of_week ASC, window_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListByRatePlan возвращает активные слоты тарифного плана для административного чтения
// vehicleType опционален: nil - слоты всех типов транспорта
func (r *Repository) ListByRatePlan(ctx context.Context, ratePlan string, vehicleType *domain.VehicleType, asOf time.Time) ([]*domain.TariffSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("tariff_slots").
		Where(squirrel.Eq{"rate_plan": ratePlan}).
		Where(squirrel.LtOrEq{"effective_start": asOf}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_end": nil},
			squirrel.Gt{"effective_end": asOf},
		}).
		OrderBy("day_of_week ASC, window_from ASC")

	if vehicleType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_type": *vehicleType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRatePlan - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRatePlan - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// FindByTriple возвращает все слоты тройки (vehicle type, rate plan, day of week)
// Используется сервисом для проверки инварианта непересечения перед записью
// Внутри транзакции добавляет FOR UPDATE, чтобы конкурирующие записи сериализовались
func (r *Repository) FindByTriple(ctx context.Context, vehicleType domain.VehicleType, ratePlan string, dayOfWeek time.Weekday) ([]*domain.TariffSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("tariff_slots").
		Where(squirrel.Eq{"vehicle_type": vehicleType}).
		Where(squirrel.Eq{"rate_plan": ratePlan}).
		Where(squirrel.Eq{"day_of_week": int(dayOfWeek)}).
		OrderBy("window_from ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTriple - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTriple - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Update обновляет тарифный слот целиком
func (r *Repository) Update(ctx context.Context, slot *domain.TariffSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tariff_slots").
		Set("vehicle_type", slot.VehicleType).
		Set("rate_plan", slot.RatePlan).
		Set("day_of_week", int(slot.DayOfWeek)).
		Set("window_from", slot.WindowFrom).
		Set("window_to", slot.WindowTo).
		Set("every_minutes", slot.EveryMinutes).
		Set("step_fee", slot.StepFee).
		Set("first_step_fee", slot.FirstStepFee).
		Set("grace_minutes", slot.GraceMinutes).
		Set("min_charge", slot.MinCharge).
		Set("max_charge", slot.MaxCharge).
		Set("effective_start", slot.EffectiveStart).
		Set("effective_end", slot.EffectiveEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Retire закрывает диапазон действия слота, устанавливая effective_end
// Слот не удаляется: история нужна для пересчёта прошлых сессий
func (r *Repository) Retire(ctx context.Context, id int64, effectiveEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tariff_slots").
		Set("effective_end", effectiveEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Retire - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Retire - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Retire - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(scanner rowScanner) (*domain.TariffSlot, error) {
	var (
		slot         domain.TariffSlot
		dayOfWeek    int
		effectiveEnd sql.NullTime
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	)

	err := scanner.Scan(
		&slot.ID,
		&slot.VehicleType,
		&slot.RatePlan,
		&dayOfWeek,
		&slot.WindowFrom,
		&slot.WindowTo,
		&slot.EveryMinutes,
		&slot.StepFee,
		&slot.FirstStepFee,
		&slot.GraceMinutes,
		&slot.MinCharge,
		&slot.MaxCharge,
		&slot.EffectiveStart,
		&effectiveEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.DayOfWeek = time.Weekday(dayOfWeek)
	if effectiveEnd.Valid {
		slot.EffectiveEnd = &effectiveEnd.Time
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func (r *Repository) scanSlotRow(row *sql.Row) (*domain.TariffSlot, error) {
	return r.scanSlot(row)
}

// scanSlots сканирует результаты запроса в слайс тарифных слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TariffSlot, error) {
	slots := make([]*domain.TariffSlot, 0)

	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
