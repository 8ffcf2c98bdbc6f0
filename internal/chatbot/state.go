// Package chatbot implements the conversational profile-extraction state
// machine. One entry point, ProcessTurn, consumes the previous conversation
// snapshot plus a user utterance and returns a fresh snapshot with the
// response to show. The caller owns persistence of the snapshot between
// turns.
package chatbot

import (
	"onboarding-chatbot/internal/profile"
)

// ConversationState is the single current phase of a conversation.
type ConversationState string

const (
	StateAwaitingURLOrName   ConversationState = "awaiting_url_or_name"
	StateExtractingFromURL   ConversationState = "extracting_from_url"
	StateConfirmingExtracted ConversationState = "confirming_extracted_profile"
	StateInterviewingUser    ConversationState = "interviewing_user"
	StateEnrichingWithURL    ConversationState = "enriching_with_url"
	StateReadyToGenerate     ConversationState = "ready_to_generate"
)

// Interview steps, tracked through State.CurrentQuestion while
// interviewing. StepBusinessName is only reachable through the
// extraction-failure fallback.
const (
	StepBusinessName = "businessName"
	StepBusinessType = "businessType"
	StepDescription  = "description"
	StepOptionalURL  = "optionalUrl"
)

// State is the full resumable conversation snapshot. ProcessTurn never
// mutates the snapshot it receives; it deep-copies first and returns the
// successor, so callers can treat states as immutable, diffable values.
type State struct {
	ConversationState ConversationState `json:"conversationState"`

	Profile   *profile.WorkingProfile   `json:"profile"`
	Extracted *profile.ExtractedProfile `json:"extractedProfile,omitempty"`

	// PendingConfirmations is the ordered queue of fields awaiting an
	// explicit yes/no after extraction.
	PendingConfirmations []profile.Field             `json:"pendingConfirmations,omitempty"`
	Patches              []profile.ConfirmationPatch `json:"confirmationPatches,omitempty"`

	// CurrentQuestion holds the field being confirmed or the interview
	// step being asked, depending on ConversationState.
	CurrentQuestion string `json:"currentQuestion,omitempty"`

	URLDetected     string `json:"urlDetected,omitempty"`
	URLValidated    bool   `json:"urlValidated,omitempty"`
	ExtractionError string `json:"extractionError,omitempty"`
}

// NewState starts a fresh conversation.
func NewState() *State {
	return &State{
		ConversationState: StateAwaitingURLOrName,
		Profile:           profile.NewWorkingProfile(),
	}
}

// Clone returns a deep copy of the snapshot. The extracted candidate is
// shared: it is immutable once produced by the collaborator.
func (s *State) Clone() *State {
	if s == nil {
		return NewState()
	}
	out := &State{
		ConversationState: s.ConversationState,
		Profile:           s.Profile.Clone(),
		Extracted:         s.Extracted,
		CurrentQuestion:   s.CurrentQuestion,
		URLDetected:       s.URLDetected,
		URLValidated:      s.URLValidated,
		ExtractionError:   s.ExtractionError,
	}
	if out.Profile == nil {
		out.Profile = profile.NewWorkingProfile()
	}
	if len(s.PendingConfirmations) > 0 {
		out.PendingConfirmations = make([]profile.Field, len(s.PendingConfirmations))
		copy(out.PendingConfirmations, s.PendingConfirmations)
	}
	if len(s.Patches) > 0 {
		out.Patches = make([]profile.ConfirmationPatch, len(s.Patches))
		copy(out.Patches, s.Patches)
	}
	return out
}

// Response is the per-turn payload handed back to the caller alongside the
// successor state.
type Response struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message,omitempty"`
	State             *State            `json:"state,omitempty"`
	SuggestedActions  []string          `json:"suggestedActions,omitempty"`
	NeedsConfirmation bool              `json:"needsConfirmation,omitempty"`
	ConfirmationField profile.Field     `json:"confirmationField,omitempty"`
	Done              bool              `json:"done,omitempty"`
	Error             string            `json:"error,omitempty"`
}
