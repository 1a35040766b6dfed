// Package agenda derives the calendar view from the appointment list. The
// projection is pure: it is rebuilt from the current cache contents on
// every render and never mutated in place.
package agenda

import (
	"sort"
	"strings"

	"github.com/akoval/terplink/internal/client/models"
)

// Item is one display-ready agenda row.
type Item struct {
	ID              string
	PatientID       string
	FacilityID      string
	StartTime       string
	EndTime         *string
	AppointmentType *string
	Status          string
	Notes           *string
}

// ItemsMap maps an ISO date ("2024-12-25") to that day's agenda rows.
type ItemsMap map[string][]Item

// Project groups appointments by the date portion of their Date field (the
// part before the first 'T'). Within a day, input order is preserved; no
// chronological ordering is imposed. Idempotent and side-effect-free.
func Project(appointments []models.Appointment) ItemsMap {
	m := make(ItemsMap, len(appointments))
	for _, a := range appointments {
		day := DateKey(a.Date)
		m[day] = append(m[day], Item{
			ID:              a.ID,
			PatientID:       a.PatientID,
			FacilityID:      a.FacilityID,
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			AppointmentType: a.AppointmentType,
			Status:          a.Status,
			Notes:           a.Notes,
		})
	}
	return m
}

// DateKey reduces an ISO timestamp to its date portion. A value without a
// 'T' separator is already a date and passes through.
func DateKey(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}

// Dates returns the map's keys in ascending date order, for display.
func (m ItemsMap) Dates() []string {
	days := make([]string, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}
