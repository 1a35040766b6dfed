package models

// Facility is a read-only reference entity fetched by id; the client never
// mutates facilities.
type Facility struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Patient is a read-only reference entity. Only fields the scheduling
// screens display are carried.
type Patient struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	PreferredLanguage string  `json:"preferredLanguage,omitempty"`
	PhoneNumber       *string `json:"phoneNumber,omitempty"`
}

// Ack is the body of mutation acknowledgements such as offer
// accept/decline responses.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
