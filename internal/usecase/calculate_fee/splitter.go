package calculate_fee

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
)

// slotWindow абсолютный временной интервал [start, end), в котором действует слот
// Окно через полночь разворачивается в два интервала, оба принадлежат слоту
// исходного дня недели
type slotWindow struct {
	start time.Time
	end   time.Time
	slot  *domain.TariffSlot
}

// splitSession разбивает [entry, exit) на упорядоченные смежные сегменты,
// каждый внутри одних календарных суток и одного тарифного окна.
// Сегменты покрывают интервал точно: без дыр и без наложений.
//
// Участок без слота - ErrNoApplicableTariff, участок с несколькими слотами -
// ErrAmbiguousTariff. Границы календарных суток считаются в loc.
func splitSession(entry, exit time.Time, slots []*domain.TariffSlot, loc *time.Location) ([]domain.Segment, error) {
	if !exit.After(entry) {
		return nil, ErrInvalidInterval
	}

	entry = entry.In(loc)
	exit = exit.In(loc)

	windows := buildWindows(entry, exit, slots, loc)

	segments := make([]domain.Segment, 0, len(windows))
	cursor := entry

	for cursor.Before(exit) {
		covering := coveringWindows(windows, cursor)

		if len(covering) == 0 {
			return nil, fmt.Errorf("%w: no slot at %s", ErrNoApplicableTariff, cursor.Format(time.RFC3339))
		}
		if len(covering) > 1 {
			return nil, fmt.Errorf("%w: %d slots at %s", ErrAmbiguousTariff, len(covering), cursor.Format(time.RFC3339))
		}

		window := covering[0]

		// Сегмент заканчивается на границе окна, на выезде или на старте
		// другого окна: наложение должно быть обнаружено, а не перепрыгнуто
		end := window.end
		if exit.Before(end) {
			end = exit
		}
		if next := nextWindowStart(windows, window, cursor); next != nil && next.Before(end) {
			end = *next
		}

		segments = append(segments, domain.Segment{
			Start: cursor,
			End:   end,
			Slot:  window.slot,
		})
		cursor = end
	}

	return segments, nil
}

// buildWindows строит абсолютные интервалы действия слотов для всех календарных
// суток, которых касается сессия. Сутки перед entry включаются: их окно через
// полночь может накрывать начало сессии
func buildWindows(entry, exit time.Time, slots []*domain.TariffSlot, loc *time.Location) []slotWindow {
	windows := make([]slotWindow, 0, len(slots)*2)

	day := midnight(entry, loc).AddDate(0, 0, -1)
	lastDay := midnight(exit, loc)

	for !day.After(lastDay) {
		nextDay := day.AddDate(0, 0, 1)
		weekday := day.Weekday()

		for _, slot := range slots {
			if slot.DayOfWeek != weekday {
				continue
			}

			from := day.Add(time.Duration(slot.WindowFrom.Minutes()) * time.Minute)
			to := day.Add(time.Duration(slot.WindowTo.Minutes()) * time.Minute)

			if slot.WrapsMidnight() {
				// Кусок до полуночи на дне D и кусок после полуночи на дне D+1,
				// оба тарифицируются слотом дня D
				windows = appendClipped(windows, slotWindow{start: from, end: nextDay, slot: slot}, entry, exit)
				wrapTo := nextDay.Add(time.Duration(slot.WindowTo.Minutes()) * time.Minute)
				windows = appendClipped(windows, slotWindow{start: nextDay, end: wrapTo, slot: slot}, entry, exit)
			} else {
				windows = appendClipped(windows, slotWindow{start: from, end: to, slot: slot}, entry, exit)
			}
		}

		day = nextDay
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].start.Before(windows[j].start)
	})

	return windows
}

// appendClipped обрезает окно по [entry, exit) и добавляет его, если оно не пусто
func appendClipped(windows []slotWindow, w slotWindow, entry, exit time.Time) []slotWindow {
	if w.start.Before(entry) {
		w.start = entry
	}
	if exit.Before(w.end) {
		w.end = exit
	}
	if !w.end.After(w.start) {
		return windows
	}
	return append(windows, w)
}

// coveringWindows возвращает все окна, содержащие момент t
func coveringWindows(windows []slotWindow, t time.Time) []slotWindow {
	covering := make([]slotWindow, 0, 1)
	for _, w := range windows {
		if !t.Before(w.start) && t.Before(w.end) {
			covering = append(covering, w)
		}
	}
	return covering
}

// nextWindowStart возвращает ближайший старт другого окна строго после t, если есть
func nextWindowStart(windows []slotWindow, current slotWindow, t time.Time) *time.Time {
	var next *time.Time
	for _, w := range windows {
		if w == current {
			continue
		}
		if w.start.After(t) && (next == nil || w.start.Before(*next)) {
			start := w.start
			next = &start
		}
	}
	return next
}

// midnight возвращает начало календарных суток момента t в loc
func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
