package wizard

import "fmt"

// Step — шаг мастера создания заказа. Порядок линейный, шаги не пропускаются.
type Step int

const (
	StepServiceType Step = iota
	StepQuantity
	StepPhotoUpload
	StepSlotSelection
	StepReview
)

var stepNames = [...]string{
	StepServiceType:   "service_type",
	StepQuantity:      "quantity",
	StepPhotoUpload:   "photo_upload",
	StepSlotSelection: "slot_selection",
	StepReview:        "review",
}

func (s Step) String() string {
	if s < StepServiceType || s > StepReview {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) {
	if s < StepServiceType || s > StepReview {
		return nil, fmt.Errorf("unknown wizard step %d", int(s))
	}
	return []byte(stepNames[s]), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for i, name := range stepNames {
		if name == string(b) {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", string(b))
}
