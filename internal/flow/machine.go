// Package flow implements the onboarding wizard: a pure step state machine
// plus a controller that drives the remote side effects through the
// services. The transition function itself performs no I/O.
package flow

// Step is the 1-based wizard position.
type Step int

const (
	StepWelcome Step = iota + 1
	StepGirlEntry
	StepDataEntry
	StepPreview
	StepEmailConversion
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepGirlEntry:
		return "girl_entry"
	case StepDataEntry:
		return "data_entry"
	case StepPreview:
		return "preview"
	case StepEmailConversion:
		return "email_conversion"
	default:
		return "unknown"
	}
}

// Event is a user action on the wizard.
type Event int

const (
	EventNext Event = iota
	EventBack
	EventSkip
	EventComplete
)

// Effect names the remote side effect a transition requires. The caller
// runs it and advances only on success (except EffectAdvanceStep fired by
// a skip, whose failure path is not observed).
type Effect int

const (
	EffectNone Effect = iota
	EffectAdvanceStep
	EffectSaveGirl
	EffectSaveDataEntry
	EffectFinalize
	EffectFinish
)

// Transition is the pure step transition function. It returns the target
// step and the effect that must succeed before the caller adopts it.
// Unknown combinations stay put with no effect.
func Transition(s Step, e Event) (Step, Effect) {
	if e == EventBack {
		if s <= StepWelcome {
			return StepWelcome, EffectNone
		}
		return s - 1, EffectNone
	}

	switch s {
	case StepWelcome:
		if e == EventNext {
			return StepGirlEntry, EffectAdvanceStep
		}
	case StepGirlEntry:
		if e == EventNext {
			return StepDataEntry, EffectSaveGirl
		}
	case StepDataEntry:
		if e == EventNext {
			return StepPreview, EffectSaveDataEntry
		}
	case StepPreview:
		switch e {
		case EventNext:
			return StepPreview, EffectFinalize
		case EventSkip:
			return StepEmailConversion, EffectAdvanceStep
		}
	case StepEmailConversion:
		switch e {
		case EventNext, EventSkip, EventComplete:
			return StepEmailConversion, EffectFinish
		}
	}
	return s, EffectNone
}
