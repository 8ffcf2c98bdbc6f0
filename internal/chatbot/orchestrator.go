package chatbot

import (
	"context"
	"strings"
	"time"

	"onboarding-chatbot/internal/common/errors"
	"onboarding-chatbot/internal/common/logger"
	"onboarding-chatbot/internal/common/metrics"
	"onboarding-chatbot/internal/extraction"
	"onboarding-chatbot/internal/profile"
	"onboarding-chatbot/internal/urlmatch"
)

// Token sets interpreted during confirmation and the optional-URL step.
// Comparison happens against the centrally normalized utterance.
var (
	affirmativeTokens = map[string]bool{
		"yes": true, "y": true, "correct": true, "confirm": true,
		"yeah": true, "yep": true, "right": true,
	}
	negativeTokens = map[string]bool{
		"no": true, "n": true, "incorrect": true, "wrong": true, "nope": true,
	}
	skipTokens = map[string]bool{
		"skip": true, "no": true, "none": true,
	}
)

// Orchestrator drives the turn-processing state machine. It holds no
// per-conversation state of its own; each conversation's snapshot is a
// value owned by exactly one caller at a time.
type Orchestrator struct {
	extractor  extraction.Service
	categories []string
	logger     logger.Logger
}

// New builds an orchestrator around the extraction collaborator.
// suggestedCategories feeds the quick replies after a business name is
// captured.
func New(extractor extraction.Service, suggestedCategories []string, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		extractor:  extractor,
		categories: suggestedCategories,
		logger:     log.With(map[string]interface{}{"component": "chatbot"}),
	}
}

// ProcessTurn is the single entry point: previous snapshot plus one user
// utterance in, successor snapshot plus response out. The received
// snapshot is never mutated. A nil state starts a fresh conversation.
// Every branch returns a valid, resumable state; nothing here panics or
// returns a raw error.
func (o *Orchestrator) ProcessTurn(ctx context.Context, utterance string, state *State) *Response {
	start := time.Now()
	next := state.Clone()

	dispatchState := string(next.ConversationState)
	metrics.TurnsProcessed.WithLabelValues(dispatchState).Inc()
	defer func() {
		metrics.TurnDuration.WithLabelValues(dispatchState).Observe(time.Since(start).Seconds())
	}()

	raw := strings.TrimSpace(utterance)
	norm := strings.ToLower(raw)

	o.logger.Debug("processing turn", map[string]interface{}{
		"state":    dispatchState,
		"question": next.CurrentQuestion,
	})

	switch next.ConversationState {
	case StateAwaitingURLOrName:
		return o.handleAwaiting(ctx, next, raw, norm)
	case StateConfirmingExtracted:
		return o.handleConfirming(next, raw, norm)
	case StateInterviewingUser:
		return o.handleInterviewing(ctx, next, raw, norm)
	case StateReadyToGenerate:
		return o.handleReady(next)
	case StateExtractingFromURL, StateEnrichingWithURL:
		// Transient states; a snapshot should never be persisted here, but
		// resume gracefully if one is.
		return o.handleAwaiting(ctx, next, raw, norm)
	default:
		next.ConversationState = StateAwaitingURLOrName
		return &Response{
			Success: false,
			Message: msgWelcome,
			State:   next,
			Error:   string(errors.ErrCodeInternalError),
		}
	}
}

// --- AWAITING_URL_OR_NAME ---

func (o *Orchestrator) handleAwaiting(ctx context.Context, next *State, raw, norm string) *Response {
	if url := urlmatch.DetectURL(raw); url != "" {
		next.ConversationState = StateExtractingFromURL
		return o.handleURL(ctx, next, url, false)
	}

	if norm != "" {
		next.Profile.SetField(profile.FieldName, raw, profile.ConfidenceHigh, profile.SourceUserProvided)
		next.Profile.RecomputeOverall()
		next.ConversationState = StateInterviewingUser
		next.CurrentQuestion = StepBusinessType
		return &Response{
			Success:          true,
			Message:          msgAskBusinessType(raw),
			State:            next,
			SuggestedActions: o.categories,
		}
	}

	return &Response{
		Success: true,
		Message: msgWelcome,
		State:   next,
	}
}

// --- URL-handling routine, shared by the initial and mid-interview paths ---

// handleURL normalizes, validates, and extracts. midInterview selects the
// recovery branch on failure and the auto-merge branch on success.
func (o *Orchestrator) handleURL(ctx context.Context, next *State, rawURL string, midInterview bool) *Response {
	url := urlmatch.NormalizeURL(rawURL)

	if !urlmatch.IsValidURLFormat(url) {
		if midInterview {
			// Fall back to the interview without aborting it.
			next.ConversationState = StateInterviewingUser
			return &Response{
				Success: false,
				Message: msgInvalidURL + " " + repromptFor(next.CurrentQuestion),
				State:   next,
				Error:   string(errors.ErrCodeInvalidURLFormat),
			}
		}
		next.ConversationState = StateAwaitingURLOrName
		return &Response{
			Success: false,
			Message: msgInvalidURL,
			State:   next,
			Error:   string(errors.ErrCodeInvalidURLFormat),
		}
	}

	next.URLDetected = url
	next.URLValidated = true

	o.logger.Info("extracting profile from url", map[string]interface{}{
		"url":          url,
		"midInterview": midInterview,
	})

	result := o.extractor.ExtractFromURL(ctx, url)

	if result == nil || !result.Success || result.Profile.IsEmpty() {
		reason := "empty profile"
		if result != nil && result.Error != "" {
			reason = result.Error
		}
		next.ExtractionError = reason
		next.ConversationState = StateInterviewingUser

		o.logger.Warn("extraction failed, degrading to interview", map[string]interface{}{
			"url":    url,
			"reason": reason,
		})

		if midInterview {
			// Continue the interview where it left off.
			return &Response{
				Success: true,
				Message: msgExtractionFailedMidInterview(next.CurrentQuestion),
				State:   next,
			}
		}

		next.CurrentQuestion = StepBusinessName
		return &Response{
			Success: false,
			Message: msgExtractionFailedInitial(reason),
			State:   next,
			Error:   string(errors.ErrCodeExtractionFailed),
		}
	}

	next.Extracted = result.Profile
	next.ExtractionError = ""

	if midInterview {
		// Enrichment path: interview answers keep priority over the
		// extracted candidate, and no confirmation round happens. The
		// shorter flow here is a deliberate product decision.
		return o.finishMerge(next)
	}

	next.PendingConfirmations = []profile.Field{profile.FieldName, profile.FieldBusinessType}
	next.CurrentQuestion = string(profile.FieldName)
	next.ConversationState = StateConfirmingExtracted

	summary := o.extractor.GenerateSummary(result.Profile)
	return &Response{
		Success:           true,
		Message:           summary + "\n\n" + msgConfirmField(profile.FieldName, result.Profile.Name),
		State:             next,
		SuggestedActions:  actionsYesNo,
		NeedsConfirmation: true,
		ConfirmationField: profile.FieldName,
	}
}

// --- CONFIRMING_EXTRACTED_PROFILE ---

func (o *Orchestrator) handleConfirming(next *State, raw, norm string) *Response {
	if len(next.PendingConfirmations) == 0 || next.Extracted == nil {
		return o.finishMerge(next)
	}

	field := next.PendingConfirmations[0]

	switch {
	case affirmativeTokens[norm]:
		next.Profile.SetField(field, next.Extracted.FieldString(field),
			profile.ConfidenceHigh, profile.SourceStructuredData)
		next.Profile.RecomputeOverall()
		return o.advanceConfirmation(next)

	case negativeTokens[norm]:
		// Same state, same question; the queue does not move.
		return &Response{
			Success:           true,
			Message:           msgAskCorrection(field),
			State:             next,
			NeedsConfirmation: true,
			ConfirmationField: field,
		}

	case norm == "":
		return &Response{
			Success:           true,
			Message:           msgConfirmField(field, next.Extracted.FieldString(field)),
			State:             next,
			SuggestedActions:  actionsYesNo,
			NeedsConfirmation: true,
			ConfirmationField: field,
		}

	default:
		// Anything else is the corrected value itself.
		next.Patches = append(next.Patches, profile.ConfirmationPatch{
			Field:     field,
			OldValue:  next.Extracted.FieldString(field),
			NewValue:  raw,
			Confirmed: true,
		})
		next.Profile.SetField(field, raw, profile.ConfidenceHigh, profile.SourceUserProvided)
		next.Profile.RecomputeOverall()
		return o.advanceConfirmation(next)
	}
}

// advanceConfirmation pops the confirmed field and either asks about the
// next one or finishes the merge.
func (o *Orchestrator) advanceConfirmation(next *State) *Response {
	next.PendingConfirmations = next.PendingConfirmations[1:]

	if len(next.PendingConfirmations) == 0 {
		return o.finishMerge(next)
	}

	field := next.PendingConfirmations[0]
	next.CurrentQuestion = string(field)
	return &Response{
		Success:           true,
		Message:           msgConfirmField(field, next.Extracted.FieldString(field)),
		State:             next,
		SuggestedActions:  actionsYesNo,
		NeedsConfirmation: true,
		ConfirmationField: field,
	}
}

// --- INTERVIEWING_USER ---

func (o *Orchestrator) handleInterviewing(ctx context.Context, next *State, raw, norm string) *Response {
	// A URL anywhere in the utterance interrupts the interview.
	if url := urlmatch.DetectURL(raw); url != "" {
		next.ConversationState = StateEnrichingWithURL
		return o.handleURL(ctx, next, url, true)
	}

	switch next.CurrentQuestion {
	case StepBusinessName:
		if norm == "" {
			return o.reprompt(next)
		}
		next.Profile.SetField(profile.FieldName, raw, profile.ConfidenceHigh, profile.SourceUserProvided)
		next.Profile.RecomputeOverall()
		next.CurrentQuestion = StepBusinessType
		return &Response{
			Success:          true,
			Message:          msgAskBusinessType(raw),
			State:            next,
			SuggestedActions: o.categories,
		}

	case StepBusinessType:
		if norm == "" {
			return o.reprompt(next)
		}
		next.Profile.SetField(profile.FieldBusinessType, norm, profile.ConfidenceHigh, profile.SourceUserProvided)
		next.Profile.RecomputeOverall()
		next.CurrentQuestion = StepDescription
		return &Response{
			Success: true,
			Message: msgAskDescription,
			State:   next,
		}

	case StepDescription:
		if norm == "" {
			return o.reprompt(next)
		}
		next.Profile.SetField(profile.FieldDescription, raw, profile.ConfidenceHigh, profile.SourceUserProvided)
		next.Profile.RecomputeOverall()
		next.CurrentQuestion = StepOptionalURL
		return &Response{
			Success:          true,
			Message:          msgAskOptionalURL,
			State:            next,
			SuggestedActions: actionsSkip,
		}

	case StepOptionalURL:
		if skipTokens[norm] {
			// The profile as built so far is final.
			next.Profile.RecomputeOverall()
			return o.finishInterview(next)
		}
		return &Response{
			Success:          true,
			Message:          msgRepromptOptionalURL,
			State:            next,
			SuggestedActions: actionsSkip,
		}

	default:
		// State-machine defect, not user error.
		o.logger.Error("unknown interview step", map[string]interface{}{
			"currentQuestion": next.CurrentQuestion,
		})
		return &Response{
			Success: false,
			Message: msgGenericError,
			State:   next,
			Error:   string(errors.ErrCodeUnknownInterviewStep),
		}
	}
}

func (o *Orchestrator) reprompt(next *State) *Response {
	return &Response{
		Success: true,
		Message: repromptFor(next.CurrentQuestion),
		State:   next,
	}
}

// --- READY_TO_GENERATE ---

func (o *Orchestrator) handleReady(next *State) *Response {
	return &Response{
		Success:          true,
		Message:          msgReady,
		State:            next,
		SuggestedActions: actionsGenerate,
		Done:             true,
	}
}

// finishMerge reconciles extracted candidate, working profile, and patches,
// then lands in the terminal state.
func (o *Orchestrator) finishMerge(next *State) *Response {
	next.Profile = profile.Merge(next.Extracted, next.Profile, next.Patches)
	return o.finishInterview(next)
}

func (o *Orchestrator) finishInterview(next *State) *Response {
	next.ConversationState = StateReadyToGenerate
	next.CurrentQuestion = ""
	metrics.ConversationsCompleted.Inc()

	o.logger.Info("conversation complete", map[string]interface{}{
		"overallConfidence": string(next.Profile.OverallConfidence),
		"fieldsSet":         len(next.Profile.Sources),
	})

	return &Response{
		Success:          true,
		Message:          msgReady,
		State:            next,
		SuggestedActions: actionsGenerate,
		Done:             true,
	}
}
