package chatbot

import (
	"fmt"

	"onboarding-chatbot/internal/profile"
)

// Prompt texts and quick replies. Kept in one place so wording changes
// never touch transition logic.

const (
	msgWelcome = "Hi! I can set up your business profile. Share your website or " +
		"social page URL, or just tell me your business name to get started."

	msgInvalidURL = "That doesn't look like a valid URL. Please share a full " +
		"address like https://example.com, or tell me your business name instead."

	msgAskBusinessName = "No problem, let's do it together. What's the name of your business?"

	msgAskDescription = "Great. What makes your business special? A sentence or two is perfect."

	msgAskOptionalURL = "Do you have an existing website or social page I can pull " +
		"more details from? Share the link, or say \"skip\"."

	msgRepromptOptionalURL = "Please share a link like https://example.com, or say \"skip\" to continue."

	msgReady = "Your business profile is ready! Click continue to generate your site."

	msgGenericError = "Something went wrong on my side. Please try again."
)

func msgAskBusinessType(name string) string {
	return fmt.Sprintf("Nice to meet you, %s! What type of business do you run?", name)
}

func msgConfirmField(f profile.Field, value string) string {
	switch f {
	case profile.FieldName:
		return fmt.Sprintf("Is %q the correct business name?", value)
	case profile.FieldBusinessType:
		return fmt.Sprintf("Is %q the right category for your business?", value)
	default:
		return fmt.Sprintf("Is %q correct for %s?", value, f)
	}
}

func msgAskCorrection(f profile.Field) string {
	switch f {
	case profile.FieldName:
		return "What is the correct business name?"
	case profile.FieldBusinessType:
		return "What category describes your business best?"
	default:
		return fmt.Sprintf("What should %s be?", f)
	}
}

func msgExtractionFailedInitial(reason string) string {
	if reason == "" {
		return "I couldn't read that site. " + msgAskBusinessName
	}
	return fmt.Sprintf("I couldn't read that site (%s). %s", reason, msgAskBusinessName)
}

func msgExtractionFailedMidInterview(current string) string {
	return "I couldn't pull details from that link, so let's keep going. " + repromptFor(current)
}

// repromptFor restates the question for the current interview step.
func repromptFor(step string) string {
	switch step {
	case StepBusinessName:
		return msgAskBusinessName
	case StepBusinessType:
		return "What type of business do you run?"
	case StepDescription:
		return msgAskDescription
	case StepOptionalURL:
		return msgRepromptOptionalURL
	default:
		return msgWelcome
	}
}

var (
	actionsYesNo    = []string{"Yes", "No"}
	actionsSkip     = []string{"Skip"}
	actionsGenerate = []string{"Generate my site"}
)
