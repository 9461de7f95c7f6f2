package model

// Booking is a confirmed ticket purchase. Rows live in the bookings table and
// are created by the booking flow; the functions in this repo only read them.
type Booking struct {
	ID        string `json:"id" mapstructure:"id"`
	UserID    string `json:"userId" mapstructure:"userId"`
	EventName string `json:"eventName" mapstructure:"eventName"`
}

// User holds the notification delivery address for a booking owner.
// FCMToken is optional; users without one never receive pushes.
type User struct {
	ID       string `json:"id" mapstructure:"id"`
	FCMToken string `json:"fcmToken" mapstructure:"fcmToken"`
}

// PaymentRequest is the HTTP body accepted by the payment-intent function.
// Amount is in minor currency units.
type PaymentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentResponse carries the processor's client secret back to the caller.
type PaymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ErrorResponse is the uniform failure body of the payment-intent function.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotificationMessage is one push notification addressed to a single device.
type NotificationMessage struct {
	Title string
	Body  string
	Token string
}
