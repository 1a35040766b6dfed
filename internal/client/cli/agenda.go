package cli

import (
	"context"
	"fmt"
)

// Agenda renders the calendar view: appointments grouped by day, days in
// ascending order.
func (a *App) Agenda(ctx context.Context) error {
	items, err := a.appointments.Agenda(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(items) == 0 {
		printlnFn("No upcoming appointments.")
		return nil
	}

	for _, day := range items.Dates() {
		printlnFn(day)
		for _, it := range items[day] {
			row := fmt.Sprintf("  %s  %s  [%s]", it.StartTime, it.ID, it.Status)
			if it.AppointmentType != nil {
				row += "  " + *it.AppointmentType
			}
			printlnFn(row)
		}
	}
	return nil
}
