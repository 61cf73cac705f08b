package chat

import (
	"context"
	"strings"
)

type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentHelp     Intent = "help"
	IntentBooking  Intent = "booking"
	IntentManaging Intent = "managing"
	IntentLocation Intent = "location"
	IntentContact  Intent = "contact"
	IntentServices Intent = "services"
	IntentUnknown  Intent = "unknown"
)

// directMatches maps intents to keyword fragments. A hit is treated as
// full confidence and skips the classifier.
var directMatches = map[Intent][]string{
	IntentGreeting: {"hi", "hello", "hey", "good morning", "good afternoon", "good evening"},
	IntentHelp:     {"help", "faq", "what can you do", "guide me"},
	IntentBooking:  {"book", "appointment", "schedule", "see a doctor"},
	IntentManaging: {"manage", "reschedule", "cancel", "change appointment"},
	IntentLocation: {"where", "location", "address", "directions"},
	IntentContact:  {"contact", "phone", "call", "reach"},
	IntentServices: {"services", "treatments", "available services"},
}

// matchOrder keeps detection deterministic; more specific intents win over
// the catch-all greeting keywords.
var matchOrder = []Intent{
	IntentManaging, IntentBooking, IntentServices,
	IntentLocation, IntentContact, IntentHelp, IntentGreeting,
}

// Classifier is the zero-shot fallback when keywords do not match.
type Classifier interface {
	Classify(ctx context.Context, text string) (Intent, float64, error)
}

type Detector struct {
	classifier Classifier
	threshold  float64
}

func NewDetector(classifier Classifier, threshold float64) *Detector {
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Detector{classifier: classifier, threshold: threshold}
}

// Detect returns the intent and a confidence score. Keyword matches score
// 1.0; classifier results below the threshold come back as IntentUnknown.
func (d *Detector) Detect(ctx context.Context, text string) (Intent, float64) {
	lowered := strings.ToLower(strings.TrimSpace(text))

	for _, intent := range matchOrder {
		for _, pattern := range directMatches[intent] {
			if strings.Contains(lowered, pattern) {
				return intent, 1.0
			}
		}
	}

	if d.classifier == nil {
		return IntentUnknown, 0
	}

	intent, score, err := d.classifier.Classify(ctx, text)
	if err != nil || score < d.threshold {
		return IntentUnknown, score
	}
	return intent, score
}

// ParseManagementAction recognizes reschedule/cancel verbs in free text.
func ParseManagementAction(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(lowered, "reschedule") || strings.Contains(lowered, "change") {
		return ActionReschedule
	}
	if strings.Contains(lowered, "cancel") || strings.Contains(lowered, "delete") {
		return ActionCancel
	}
	return ""
}
