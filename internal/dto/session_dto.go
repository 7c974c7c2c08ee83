package dto

// SessionResponse describes the signed-in user and the subscription the wizard operates on
type SessionResponse struct {
	UserId       string               `json:"user_id"`
	Email        string               `json:"email"`
	Subscription *SessionSubscription `json:"subscription"`
}

type SessionSubscription struct {
	Id           string `json:"id"`
	MonthlyPrice int64  `json:"monthly_price"` // cents
	Status       string `json:"status"`
}
