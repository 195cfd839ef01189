package models

// Notification audiences.
const (
	NotifyTourist  = "tourist"
	NotifyProvider = "provider"
)

// ReviewNotification is the payload queued for the notification worker
// whenever something happens to a review that a person should hear about.
type ReviewNotification struct {
	Target   string            `json:"target"`
	TargetID string            `json:"targetId"`
	ReviewID string            `json:"reviewId"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
}
