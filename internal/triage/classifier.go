package triage

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/triage-dashboard/internal/domain"
)

// Result is the classifier's best guess for a ticket message.
type Result struct {
	Category   domain.TicketCategory
	Priority   domain.TicketPriority
	Confidence float64
}

// Rule evaluation is ordered and first-match-wins: billing vocabulary is
// checked before defect vocabulary before request vocabulary. A message
// matching several vocabularies is classified by the first rule, not the
// "best" one.
var (
	billingPattern = regexp.MustCompile(`invoice|bill|charge|payment|refund|subscription|credit card|pricing|plan|receipt|cost|fee|upgrade|downgrade`)
	billingUrgent  = regexp.MustCompile(`wrong|incorrect|twice|double|unauthorized|fail|error|decline|urgent|immediately`)
	defectPattern  = regexp.MustCompile(`crash|error|fail|bug|broken|glitch|not working|down|issue|problem|404|500|exception|timeout|login|password|access|typo|distorted`)
	defectSevere   = regexp.MustCompile(`crash|down|login|locked|security|data loss|urgent|immediately|critical|block|500`)
	requestPattern = regexp.MustCompile(`feature|add|support|integrate|integration|suggestion|improve|request|would be nice|can you|enable|mode|dark mode|mobile view`)
)

const (
	matchConfidence    = 0.85
	fallbackConfidence = 0.40
	confidenceJitter   = 0.05
	minConfidence      = 0.10
	maxConfidence      = 0.99
)

// Classifier guesses category and priority from free-form ticket text. The
// configured latency emulates a remote inference call; it is fixed per
// instance and never depends on the input.
type Classifier struct {
	latency time.Duration
	jitter  func() float64
}

// NewClassifier constructs a classifier with the given artificial latency.
func NewClassifier(latency time.Duration) *Classifier {
	return &Classifier{
		latency: latency,
		jitter:  rand.Float64,
	}
}

// Classify maps a message to category, priority and a simulated confidence
// score. The computation itself cannot fail; the returned error is non-nil
// only when ctx is done before the artificial latency elapses.
func (c *Classifier) Classify(ctx context.Context, message string) (Result, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	category, priority := matchRules(message)

	base := matchConfidence
	if category == domain.TicketCategoryGeneral {
		// Fallback bucket: nothing matched, so the "AI" is less sure.
		base = fallbackConfidence
	}
	confidence := base + (c.jitter()*2*confidenceJitter - confidenceJitter)
	confidence = min(maxConfidence, max(minConfidence, confidence))

	return Result{Category: category, Priority: priority, Confidence: confidence}, nil
}

func matchRules(message string) (domain.TicketCategory, domain.TicketPriority) {
	text := strings.ToLower(message)

	switch {
	case billingPattern.MatchString(text):
		if billingUrgent.MatchString(text) {
			return domain.TicketCategoryBilling, domain.TicketPriorityHigh
		}
		return domain.TicketCategoryBilling, domain.TicketPriorityMedium
	case defectPattern.MatchString(text):
		if defectSevere.MatchString(text) {
			return domain.TicketCategoryBug, domain.TicketPriorityHigh
		}
		return domain.TicketCategoryBug, domain.TicketPriorityMedium
	case requestPattern.MatchString(text):
		return domain.TicketCategoryFeatureRequest, domain.TicketPriorityLow
	}
	return domain.TicketCategoryGeneral, domain.TicketPriorityLow
}
