package challenge

import "time"

type Creator struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Creator     Creator   `json:"creator"`
}

type Participant struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	UserID      string    `json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
	Completed   bool      `json:"completed"`
}
