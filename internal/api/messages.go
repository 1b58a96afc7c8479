package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Habit is a habit as its owner sees it. CheckedInToday and Alive are
// computed against the server's reference calendar day.
type Habit struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastCheckIn    *time.Time `json:"last_check_in,omitempty"`
	CheckedInToday bool       `json:"checked_in_today"`
	Alive          bool       `json:"alive"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateHabitRequest struct {
	Name string `json:"name"`
}

type CreateHabitResponse struct {
	Habit Habit `json:"habit"`
}

type ListHabitsRequest struct{}

type ListHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type RenameHabitRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RenameHabitResponse struct {
	Habit Habit `json:"habit"`
}

type DeleteHabitRequest struct {
	ID string `json:"id"`
}

type DeleteHabitResponse struct{}

type CheckInRequest struct {
	HabitID string `json:"habit_id"`
}

// Outcome values of CheckInResponse.
const (
	OutcomeAlreadyDone = "already_done"
	OutcomeContinued   = "continued"
	OutcomeReset       = "reset"
)

type CheckInResponse struct {
	Outcome       string     `json:"outcome"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastCheckIn   *time.Time `json:"last_check_in,omitempty"`
}

// GetLeaderboardRequest asks for the top Limit users. Zero selects the
// server default.
type GetLeaderboardRequest struct {
	Limit int `json:"limit"`
}

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	Owner             string `json:"owner"`
	DisplayName       string `json:"display_name"`
	BestCurrentStreak int    `json:"best_current_streak"`
}

type LeaderboardStats struct {
	TotalHabits  int `json:"total_habits"`
	TrackedUsers int `json:"tracked_users"`
	ActiveToday  int `json:"active_today"`
	TopStreak    int `json:"top_streak"`
}

type GetLeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	Stats       LeaderboardStats   `json:"stats"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ErrorResponse is the body of every non-2xx HTTP response.
type ErrorResponse struct {
	Error string `json:"error"`
}
