// Package models contains wire-level entities exchanged with the
// scheduling API. All entities are owned by the remote system; the client
// only caches them.
package models

// Appointment is a single interpreting assignment. Date carries an ISO
// timestamp ("2024-12-25T00:00:00Z"); StartTime/EndTime are clock times
// ("09:30"). Optional fields are pointers so PATCH bodies and partial
// server payloads round-trip cleanly.
type Appointment struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         *string `json:"endTime,omitempty"`
	AppointmentType *string `json:"appointmentType,omitempty"`
	Status          string  `json:"status"`
	FacilityID      string  `json:"facilityId"`
	PatientID       string  `json:"patientId"`
	InterpreterID   *string `json:"interpreterId,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	BookingID       *string `json:"bookingId,omitempty"`
	IsCertified     *bool   `json:"isCertified,omitempty"`
}

// AppointmentPatch is a partial update for PATCH /appointments/{id}.
// Nil fields are omitted from the request body and left untouched by the
// server.
type AppointmentPatch struct {
	Date            *string `json:"date,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	EndTime         *string `json:"endTime,omitempty"`
	AppointmentType *string `json:"appointmentType,omitempty"`
	Status          *string `json:"status,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// FollowUpRequest is the body for POST /appointments when booking a
// follow-up visit. ClientReference is a client-generated id the server can
// use to de-duplicate resubmissions.
type FollowUpRequest struct {
	PatientID       string  `json:"patientId"`
	FacilityID      string  `json:"facilityId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         *string `json:"endTime,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ClientReference string  `json:"clientReference"`
}
