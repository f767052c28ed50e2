package domain

import "time"

type SlugStyle string

const (
	SlugStyleIntelligent SlugStyle = "intelligent"
	SlugStyleShort       SlugStyle = "short"
	SlugStyleDescriptive SlugStyle = "descriptive"
	SlugStyleTechnical   SlugStyle = "technical"
)

// AllSlugStyles lists styles in the order they are offered during setup.
var AllSlugStyles = []SlugStyle{
	SlugStyleIntelligent,
	SlugStyleShort,
	SlugStyleDescriptive,
	SlugStyleTechnical,
}

func (s SlugStyle) Valid() bool {
	switch s {
	case SlugStyleIntelligent, SlugStyleShort, SlugStyleDescriptive, SlugStyleTechnical:
		return true
	}
	return false
}

// Description returns the user-facing summary shown in the setup wizard.
func (s SlugStyle) Description() string {
	switch s {
	case SlugStyleShort:
		return "Prioritizes brevity - 3-6 characters when possible"
	case SlugStyleDescriptive:
		return "Longer, more descriptive slugs that explain the content"
	case SlugStyleTechnical:
		return "Technical/developer-friendly slugs with conventions"
	default:
		return "AI analyzes content for smart, relevant slugs"
	}
}

type SetupStep string

const (
	SetupStepWelcome         SetupStep = "welcome"
	SetupStepDomainSelection SetupStep = "domain_selection"
	SetupStepSlugStyle       SetupStep = "slug_style"
	SetupStepAutoConfirm     SetupStep = "auto_confirm"
	SetupStepShowReasoning   SetupStep = "show_reasoning"
	SetupStepCompleted       SetupStep = "completed"
)

func (s SetupStep) Valid() bool {
	switch s {
	case SetupStepWelcome, SetupStepDomainSelection, SetupStepSlugStyle,
		SetupStepAutoConfirm, SetupStepShowReasoning, SetupStepCompleted:
		return true
	}
	return false
}

// Next returns the step that follows once the current one is answered.
// Completed is terminal.
func (s SetupStep) Next() SetupStep {
	switch s {
	case SetupStepWelcome:
		return SetupStepDomainSelection
	case SetupStepDomainSelection:
		return SetupStepSlugStyle
	case SetupStepSlugStyle:
		return SetupStepAutoConfirm
	case SetupStepAutoConfirm:
		return SetupStepShowReasoning
	default:
		return SetupStepCompleted
	}
}

// Prev returns the preceding wizard step. Welcome is the floor.
func (s SetupStep) Prev() SetupStep {
	switch s {
	case SetupStepDomainSelection:
		return SetupStepWelcome
	case SetupStepSlugStyle:
		return SetupStepDomainSelection
	case SetupStepAutoConfirm:
		return SetupStepSlugStyle
	case SetupStepShowReasoning:
		return SetupStepAutoConfirm
	case SetupStepCompleted:
		return SetupStepShowReasoning
	default:
		return SetupStepWelcome
	}
}

// UserPreferences holds a user's durable short-link settings. Exactly one
// record exists per user; it is created with defaults when setup starts and
// only removed by an explicit reset.
type UserPreferences struct {
	UserID             int64     `json:"userId" gorm:"primaryKey"`
	DefaultDomain      string    `json:"defaultDomain"`
	PreferredSlugStyle SlugStyle `json:"preferredSlugStyle" gorm:"not null;default:'intelligent'"`
	AutoConfirm        bool      `json:"autoConfirm" gorm:"not null;default:false"`
	ShowReasoning      bool      `json:"showReasoning" gorm:"not null;default:true"`
	SetupCompleted     bool      `json:"setupCompleted" gorm:"not null;default:false"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PreferencesUpdate is a partial update; nil fields are left unchanged.
type PreferencesUpdate struct {
	DefaultDomain      *string
	PreferredSlugStyle *SlugStyle
	AutoConfirm        *bool
	ShowReasoning      *bool
	SetupCompleted     *bool
}
