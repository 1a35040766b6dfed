package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/akoval/terplink/internal/client/forms"
)

// Appointments lists the interpreter's upcoming appointments.
func (a *App) Appointments(ctx context.Context) error {
	appts, err := a.appointments.List(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(appts) == 0 {
		printlnFn("No upcoming appointments.")
		return nil
	}
	for _, appt := range appts {
		printlnFn(fmt.Sprintf("%s  %s %s  [%s]", appt.ID, appt.Date, appt.StartTime, appt.Status))
	}
	return nil
}

// Show renders a single appointment, resolving the facility and patient
// names from the directory where possible. Directory failures degrade to
// bare ids rather than failing the whole screen.
func (a *App) Show(ctx context.Context, id string) error {
	appt, err := a.appointments.Get(ctx, id)
	if err != nil {
		return a.fail(err)
	}

	printlnFn("Appointment", appt.ID)
	printlnFn("  Date:   ", appt.Date, appt.StartTime)
	if appt.EndTime != nil {
		printlnFn("  Ends:   ", *appt.EndTime)
	}
	if appt.AppointmentType != nil {
		printlnFn("  Type:   ", *appt.AppointmentType)
	}
	printlnFn("  Status: ", appt.Status)

	if f, err := a.directory.Facility(ctx, appt.FacilityID); err == nil {
		printlnFn("  Where:  ", f.Name+", "+f.City)
	} else {
		printlnFn("  Where:  ", appt.FacilityID)
	}
	if p, err := a.directory.Patient(ctx, appt.PatientID); err == nil {
		printlnFn("  Patient:", p.FirstName+" "+p.LastName, "("+p.PreferredLanguage+")")
	} else {
		printlnFn("  Patient:", appt.PatientID)
	}
	if appt.Notes != nil {
		printlnFn("  Notes:  ", *appt.Notes)
	}
	return nil
}

// CloseOut walks the user through the close-out form and submits it.
func (a *App) CloseOut(ctx context.Context, id string) error {
	status, err := GetSimpleText(a.reader, "Outcome (completed / no-show / cancelled)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	endTime, err := GetSimpleText(a.reader, "End time (HH:MM, empty to skip)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	notes, err := GetSimpleText(a.reader, "Notes (empty to skip)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}

	form := forms.CloseOutForm{Status: status, EndTime: endTime, Notes: notes}
	appt, err := a.appointments.Close(ctx, id, form)
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Appointment", appt.ID, "closed as", appt.Status)
	return nil
}

// FollowUp walks the user through booking a follow-up visit.
func (a *App) FollowUp(ctx context.Context) error {
	patientID, err := GetSimpleText(a.reader, "Patient id", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	facilityID, err := GetSimpleText(a.reader, "Facility id", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	date, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	startTime, err := GetSimpleText(a.reader, "Start time (HH:MM)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}
	notes, err := GetSimpleText(a.reader, "Notes (empty to skip)", os.Stdout)
	if err != nil {
		return a.fail(err)
	}

	form := forms.FollowUpForm{
		PatientID:  patientID,
		FacilityID: facilityID,
		Date:       date,
		StartTime:  startTime,
		Notes:      notes,
	}
	created, err := a.appointments.CreateFollowUp(ctx, form)
	if err != nil {
		return a.fail(err)
	}
	printlnFn("Follow-up booked:", created.ID, "on", created.Date, created.StartTime)
	return nil
}
