package agenda

import (
	"testing"

	"github.com/akoval/terplink/internal/client/models"
	"github.com/stretchr/testify/require"
)

func appt(id, date string) models.Appointment {
	return models.Appointment{
		ID:         id,
		Date:       date,
		StartTime:  "09:00",
		Status:     "scheduled",
		FacilityID: "f1",
		PatientID:  "p1",
	}
}

func TestProject_GroupsByDate(t *testing.T) {
	got := Project([]models.Appointment{
		appt("1", "2024-12-25T00:00:00Z"),
		appt("2", "2024-12-25T00:00:00Z"),
		appt("3", "2024-12-26T00:00:00Z"),
	})

	require.Len(t, got, 2)

	day1 := got["2024-12-25"]
	require.Len(t, day1, 2)
	require.Equal(t, "1", day1[0].ID)
	require.Equal(t, "2", day1[1].ID)

	day2 := got["2024-12-26"]
	require.Len(t, day2, 1)
	require.Equal(t, "3", day2[0].ID)
}

func TestProject_PreservesInputOrderWithinDay(t *testing.T) {
	got := Project([]models.Appointment{
		appt("late", "2024-12-25T15:00:00Z"),
		appt("early", "2024-12-25T08:00:00Z"),
	})

	day := got["2024-12-25"]
	require.Equal(t, []string{"late", "early"}, []string{day[0].ID, day[1].ID})
}

func TestProject_Empty(t *testing.T) {
	require.Empty(t, Project(nil))
	require.Empty(t, Project([]models.Appointment{}))
}

func TestDateKey(t *testing.T) {
	require.Equal(t, "2024-12-25", DateKey("2024-12-25T10:30:00Z"))
	require.Equal(t, "2024-12-25", DateKey("2024-12-25"))
}

func TestDates_Sorted(t *testing.T) {
	got := Project([]models.Appointment{
		appt("1", "2024-12-26T00:00:00Z"),
		appt("2", "2024-12-24T00:00:00Z"),
		appt("3", "2024-12-25T00:00:00Z"),
	})

	require.Equal(t, []string{"2024-12-24", "2024-12-25", "2024-12-26"}, got.Dates())
}

func TestProject_Idempotent(t *testing.T) {
	in := []models.Appointment{appt("1", "2024-12-25T00:00:00Z")}
	first := Project(in)
	second := Project(in)
	require.Equal(t, first, second)
}
