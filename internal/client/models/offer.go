package models

// Offer is a time-boxed proposal of an appointment to the signed-in
// interpreter. Offers exist only while in the server's "available" set;
// accepting or declining (by anyone) removes them from it.
type Offer struct {
	ID              string  `json:"id"`
	AppointmentID   string  `json:"appointmentId"`
	BookingID       string  `json:"bookingId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         *string `json:"endTime,omitempty"`
	AppointmentType *string `json:"appointmentType,omitempty"`
	FacilityName    string  `json:"facilityName"`
	FacilityAddress string  `json:"facilityAddress"`
	DistanceMiles   float64 `json:"distanceMiles"`
}
