package request

type BookAppointmentRequest struct {
	DoctorID      string `json:"doctor_id" validate:"required,uuid4"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string `json:"time_slot" validate:"required,datetime=15:04"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash online"`
	Notes         string `json:"notes" validate:"max=2000"`
}

type ActivateChatRequest struct {
	// ExpiryDays defaults to the configured chat window when omitted.
	ExpiryDays int `json:"expiry_days" validate:"omitempty,min=1,max=90"`
}
