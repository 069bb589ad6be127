// Package script defines the consultation intake conversation: the
// ordered questions every chat surface asks, with their validation.
//
// There is exactly one script. The full-page contact flow, the floating
// widget and the consult CLI all consume this definition, so the
// surfaces cannot drift apart.
package script

// QuestionSpec is one step of the conversation.
type QuestionSpec struct {
	// Prompt may reference answers of earlier steps as {field}.
	Prompt string

	// Field names the answer slot. Unique within a script.
	Field string

	// Choices, when set, are surfaced as quick options. Picking one is
	// the same as typing its text verbatim.
	Choices []string

	// Validate accepts or rejects raw input. nil accepts everything
	// non-blank.
	Validate func(input string) bool

	// Transform canonicalizes accepted input before it is stored.
	Transform func(input string) string

	// ErrorText is the fixed message shown when Validate rejects.
	ErrorText string
}

// Consultation is the consultation intake script.
func Consultation() []QuestionSpec {
	return []QuestionSpec{
		{
			Prompt:    "Hello! I'm here to help you prepare for your consultation with Sharon K. Lowry. May I start by getting your name?",
			Field:     "name",
			Validate:  NonBlank,
			ErrorText: "Please enter your name to continue.",
		},
		{
			Prompt:    "Nice to meet you, {name}! What's the best email address to reach you at?",
			Field:     "email",
			Validate:  EmailAddress,
			ErrorText: "Please enter a valid email address.",
		},
		{
			Prompt:    "Great! And what's your phone number? (This helps Sharon prepare for your call)",
			Field:     "phone",
			Validate:  PhoneNumber,
			Transform: FormatPhone,
			ErrorText: "Please enter a valid phone number with at least 10 digits.",
		},
		{
			Prompt: "Perfect! Now, which legal service are you most interested in?",
			Field:  "serviceType",
			Choices: []string{
				"Will & Estate Planning",
				"Probate Administration",
				"Applications for Heirship",
				"Powers of Attorney",
				"Guardianship Applications",
				"Small Estate Affidavits",
				"Not sure - need guidance",
			},
			Validate:  NonBlank,
			ErrorText: "Please select a service or let me know if you need guidance.",
		},
		{
			Prompt: "Excellent choice. When would you like to schedule your consultation?",
			Field:  "timeline",
			Choices: []string{
				"As soon as possible",
				"Within the next week",
				"Within the next month",
				"I have a flexible schedule",
				"I need to discuss urgency first",
			},
			Validate:  NonBlank,
			ErrorText: "Please let me know your preferred timing.",
		},
		{
			Prompt:    "Finally, could you briefly describe your situation or any key details Sharon should know about? (For example: recent loss in family, estate size, specific concerns, etc.)",
			Field:     "details",
			Validate:  MinLen(10),
			ErrorText: "Please provide some details to help Sharon prepare for your consultation.",
		},
	}
}

// Labels maps script fields to the human-readable names used in
// summaries.
func Labels() map[string]string {
	return map[string]string{
		"name":        "Name",
		"email":       "Email",
		"phone":       "Phone",
		"serviceType": "Service Needed",
		"timeline":    "Timeline",
		"details":     "Details",
	}
}
