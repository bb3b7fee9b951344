package model

// User is the account view returned to callers. It never carries the
// credential secret.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	JoinedAt    int64  `json:"joinedAt"`
}

// AuthRecord is a User plus its credential secret. It lives only inside the
// users collection; stripping the secret yields the User view.
type AuthRecord struct {
	User
	Secret string `json:"secret"`
}

// Chat message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is a single turn of a chat session. Messages are append-only and
// immutable once written; ordering is insertion order.
type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// TechnicalSpecs holds the printing parameters attached to a recommendation.
type TechnicalSpecs struct {
	NozzleTemp string `json:"nozzleTemp"`
	BedTemp    string `json:"bedTemp"`
	NozzleType string `json:"nozzleType"`
	Notes      string `json:"notes,omitempty"`
}

// Recommendation is one typed filament suggestion produced by the advisor.
// Within a recommendation set at most one entry has IsTopPick set.
type Recommendation struct {
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Material       string         `json:"material"`
	Reason         string         `json:"reason"`
	PriceEstimate  string         `json:"priceEstimate"`
	ProductURL     string         `json:"productUrl"`
	IsTopPick      bool           `json:"isTopPick"`
	TechnicalSpecs TechnicalSpecs `json:"technicalSpecs"`
}

// Project is a saved wizard result or chat session owned by a single user.
// Exactly one of Recommendations / ChatHistory is populated.
type Project struct {
	ID              string           `json:"id"`
	OwnerID         string           `json:"ownerId"`
	Title           string           `json:"title"`
	CreatedAt       int64            `json:"createdAt"`
	DisplayDate     string           `json:"displayDate"`
	Category        string           `json:"category"`
	ThumbnailRef    string           `json:"thumbnailRef"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	ChatHistory     []Message        `json:"chatHistory,omitempty"`
}

// PrinterType describes the user's printer configuration.
type PrinterType string

const (
	PrinterOpen          PrinterType = "open"
	PrinterEnclosed      PrinterType = "enclosed"
	PrinterHeatedChamber PrinterType = "heated_chamber"
)

// ExperienceLevel describes how seasoned the user is.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Aesthetic describes the desired surface finish.
type Aesthetic string

const (
	AestheticStandard    Aesthetic = "standard"
	AestheticMatte       Aesthetic = "matte"
	AestheticGlossy      Aesthetic = "glossy"
	AestheticTransparent Aesthetic = "transparent"
	AestheticSilk        Aesthetic = "silk"
)

// Budget describes the price tier the user is shopping in.
type Budget string

const (
	BudgetLow      Budget = "budget"
	BudgetStandard Budget = "standard"
	BudgetPremium  Budget = "premium"
)

// QuestionnaireSubmission is the transient input of the guided wizard. Only
// the recommendations derived from it are persisted.
type QuestionnaireSubmission struct {
	Application     string          `json:"application"`
	PrinterType     PrinterType     `json:"printerType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Aesthetic       Aesthetic       `json:"aesthetic"`
	Budget          Budget          `json:"budget"`
}

func (p PrinterType) Valid() bool {
	switch p {
	case PrinterOpen, PrinterEnclosed, PrinterHeatedChamber:
		return true
	}
	return false
}

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

func (a Aesthetic) Valid() bool {
	switch a {
	case AestheticStandard, AestheticMatte, AestheticGlossy, AestheticTransparent, AestheticSilk:
		return true
	}
	return false
}

func (b Budget) Valid() bool {
	switch b {
	case BudgetLow, BudgetStandard, BudgetPremium:
		return true
	}
	return false
}

// Validate checks that the free-text application is present and every
// enumerated field carries a known value.
func (q QuestionnaireSubmission) Validate() error {
	if q.Application == "" {
		return NewValidationError("application", "application is required")
	}
	if !q.PrinterType.Valid() {
		return NewValidationError("printerType", "unknown printer type")
	}
	if !q.ExperienceLevel.Valid() {
		return NewValidationError("experienceLevel", "unknown experience level")
	}
	if !q.Aesthetic.Valid() {
		return NewValidationError("aesthetic", "unknown aesthetic")
	}
	if !q.Budget.Valid() {
		return NewValidationError("budget", "unknown budget tier")
	}
	return nil
}
