package inference

import "fmt"

// FollowUpQuestion is a single canned question, keyed to the uncertainty
// category it resolves, with the patch applied for each answer branch.
type FollowUpQuestion struct {
	ID            string      `json:"id"`
	Category      Uncertainty `json:"category"`
	Text          string      `json:"text"`
	Answered      bool        `json:"answered"`
	ApplyIfYes    Draft       `json:"-"`
	ApplyIfNo     Draft       `json:"-"`
	ApplyIfSkip   Draft       `json:"-"`
}

// BuildFollowUpQuestions picks the first three uncertainties in priority
// order (power, data, video, connector) and emits one canned question per
// category.
func BuildFollowUpQuestions(uncertainties []Uncertainty) []FollowUpQuestion {
	present := make(map[Uncertainty]bool, len(uncertainties))
	for _, u := range uncertainties {
		present[u] = true
	}

	var ordered []Uncertainty
	for _, u := range followUpPriority {
		if present[u] {
			ordered = append(ordered, u)
		}
	}
	if len(ordered) > 3 {
		ordered = ordered[:3]
	}

	questions := make([]FollowUpQuestion, 0, len(ordered))
	for i, u := range ordered {
		questions = append(questions, cannedQuestion(fmt.Sprintf("q-%d", i+1), u))
	}
	return questions
}

func cannedQuestion(id string, category Uncertainty) FollowUpQuestion {
	switch category {
	case UncertaintyPower:
		watts60 := 60.0
		yes := true
		no := false
		return FollowUpQuestion{
			ID:          id,
			Category:    category,
			Text:        "Does this cable support USB Power Delivery charging?",
			ApplyIfYes:  Draft{PDSupported: &yes, MaxWatts: &watts60},
			ApplyIfNo:   Draft{PDSupported: &no},
			ApplyIfSkip: Draft{},
		}
	case UncertaintyData:
		return FollowUpQuestion{
			ID:          id,
			Category:    category,
			Text:        "What is the highest USB or Thunderbolt generation this cable supports?",
			ApplyIfYes:  Draft{USBGeneration: "USB 3.2 Gen 2", Gbps: "10"},
			ApplyIfNo:   Draft{USBGeneration: "USB 2.0", Gbps: "0.48"},
			ApplyIfSkip: Draft{},
		}
	case UncertaintyVideo:
		yes := true
		no := false
		return FollowUpQuestion{
			ID:          id,
			Category:    category,
			Text:        "Does this cable carry a video signal (DisplayPort / HDMI alt mode)?",
			ApplyIfYes:  Draft{VideoSupport: "yes"},
			ApplyIfNo:   Draft{VideoSupport: "no"},
			ApplyIfSkip: Draft{},
		}
	default: // UncertaintyConnector
		return FollowUpQuestion{
			ID:          id,
			Category:    category,
			Text:        "What connectors does this cable have on each end?",
			ApplyIfYes:  Draft{},
			ApplyIfNo:   Draft{},
			ApplyIfSkip: Draft{},
		}
	}
}
