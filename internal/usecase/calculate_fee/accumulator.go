package calculate_fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// accumulateFee считает итоговую плату по упорядоченным сегментам.
//
// Правила:
//   - льготные минуты берутся из слота первого сегмента и списываются один раз
//     с начала сессии, переходя через границы сегментов до исчерпания;
//   - оплачиваемое время нарезается на блоки размера every активного слота,
//     неполный последний блок оплачивается целиком;
//   - первый блок всей сессии идёт по first-step цене, последующие - по step;
//     размер и цена блока определяются слотом, активным на первой
//     оплачиваемой секунде блока; блок, пересекающий границу сегмента,
//     доедает минуты следующего сегмента без доплаты;
//   - итог ограничивается [min, max] владеющего тарифа: слота с наибольшей
//     долей оплачиваемого времени, при равенстве - слота на момент выезда;
//   - результат округляется до двух знаков, половина - вверх.
//
// Сегмент, полностью съеденный льготным временем, даёт ноль блоков; это не ошибка.
func accumulateFee(segments []domain.Segment) decimal.Decimal {
	if len(segments) == 0 {
		return decimal.Zero
	}

	graceLeft := int64(segments[0].Slot.GraceMinutes) * 60

	total := decimal.Zero
	billableBySlot := make(map[*domain.TariffSlot]int64, len(segments))

	blockIndex := 0
	var blockLeft int64 // секунды, оставшиеся в текущем оплаченном блоке

	for i := range segments {
		seg := &segments[i]
		secondsLeft := int64(seg.Duration() / time.Second)

		if graceLeft > 0 {
			consumed := min64(graceLeft, secondsLeft)
			graceLeft -= consumed
			secondsLeft -= consumed
		}

		billableBySlot[seg.Slot] += secondsLeft

		for secondsLeft > 0 {
			if blockLeft == 0 {
				fee := seg.Slot.StepFee
				if blockIndex == 0 {
					fee = seg.Slot.FirstStepFee
				}
				total = total.Add(fee)
				blockIndex++
				blockLeft = int64(seg.Slot.EveryMinutes) * 60
			}

			consumed := min64(blockLeft, secondsLeft)
			blockLeft -= consumed
			secondsLeft -= consumed
		}
	}

	owner := owningSlot(segments, billableBySlot)
	total = clamp(total, owner.MinCharge, owner.MaxCharge)

	return total.Round(2)
}

// owningSlot выбирает слот для применения min/max: наибольшая доля оплачиваемого
// времени, при равенстве - слот последнего сегмента (активный на момент выезда)
func owningSlot(segments []domain.Segment, billableBySlot map[*domain.TariffSlot]int64) *domain.TariffSlot {
	owner := segments[len(segments)-1].Slot
	maxShare := billableBySlot[owner]

	for i := range segments {
		slot := segments[i].Slot
		if billableBySlot[slot] > maxShare {
			owner = slot
			maxShare = billableBySlot[slot]
		}
	}

	return owner
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
