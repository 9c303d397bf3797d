package mathsdk

// ============================================================================
// Enumerations
// ============================================================================

// Role is the closed set of user roles known to the platform.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleStudent   Role = "STUDENT"
	RoleTeacher   Role = "TEACHER"
	RoleModerator Role = "MODERATOR"
	RoleGuest     Role = "GUEST"
)

// Gender values accepted by the profile endpoints.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ============================================================================
// Core Records
// ============================================================================

// DailyExercise is the per-user daily practice summary embedded in User.
type DailyExercise struct {
	// DailyTasksCompleted is the lifetime count of completed daily exercises
	DailyTasksCompleted int `json:"dailyTasksCompleted"`

	// IsSolved reports whether today's exercise has already been solved
	IsSolved bool `json:"isSolved"`

	// LastDailyTaskDate is the ISO date of the last solved exercise, nil if never
	LastDailyTaskDate *string `json:"lastDailyTaskDate"`

	// Streak is the current consecutive-day solve streak
	Streak int `json:"streak"`
}

// ExerciseImage references an uploaded exercise drawing.
type ExerciseImage struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// User is the authenticated identity record returned by the backend.
//
// The sign-in endpoint may return a partial record carrying only Email when a
// second factor is required; callers distinguish the two shapes by whether
// Login is populated.
type User struct {
	ID                   int64           `json:"id"`
	Login                string          `json:"login"`
	Firstname            *string         `json:"firstname"`
	Lastname             *string         `json:"lastname"`
	Email                string          `json:"email"`
	Role                 Role            `json:"role"`
	Points               int             `json:"points"`
	Level                int             `json:"level"`
	PhoneNumber          *string         `json:"phoneNumber"`
	Address              *string         `json:"address"`
	DailyExercise        DailyExercise   `json:"dailyExercise"`
	DateOfBirth          *string         `json:"dateOfBirth"`
	Gender               *Gender         `json:"gender"`
	ProfilePhotoURL      *string         `json:"profilePhotoUrl"`
	ExerciseImages       []ExerciseImage `json:"exerciseImages"`
	Verified             bool            `json:"verified"`
	TwoFactorEnabled     bool            `json:"twoFactorEnabled"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
}

// SecondFactorRequired reports whether this record is the partial sign-in
// response that gates full session establishment behind a verification code.
func (u *User) SecondFactorRequired() bool {
	return u.Email != "" && u.Login == ""
}

// ExerciseDTO is the daily exercise payload.
type ExerciseDTO struct {
	ID                 int64  `json:"id"`
	TemplateExerciseID *int64 `json:"templateExerciseId"`
	Text               string `json:"text"`
	Answer             string `json:"answer"`
}

// DefaultResponse is the backend's standard message envelope.
type DefaultResponse struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
}

// ============================================================================
// Request Types
// ============================================================================

// LoginRequest authenticates by login or email plus password.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AcceptTerms bool   `json:"acceptTerms"`
}

// ProfileUpdate is a partial update of the mutable profile fields. Nil fields
// are omitted and left unchanged server-side.
type ProfileUpdate struct {
	Firstname            *string `json:"firstname,omitempty"`
	Lastname             *string `json:"lastname,omitempty"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	Address              *string `json:"address,omitempty"`
	DateOfBirth          *string `json:"dateOfBirth,omitempty"`
	Gender               *Gender `json:"gender,omitempty"`
	NotificationsEnabled *bool   `json:"notificationsEnabled,omitempty"`
	TwoFactorAuthEnabled *bool   `json:"twoFactorAuthEnabled,omitempty"`
}
