package pipeline

// ItemState is the explicit per-item position in the publish sequence.
// Render and publish failures divert to StateSkipped; playlist-attach
// failure is tolerated and still reaches StateDone.
type ItemState int

const (
	StatePending ItemState = iota
	StateRendering
	StateRendered
	StatePublishing
	StatePublished
	StateRecorded
	StatePlaylistAttach
	StateDone
	StateSkipped
)

var stateNames = map[ItemState]string{
	StatePending:        "pending",
	StateRendering:      "rendering",
	StateRendered:       "rendered",
	StatePublishing:     "publishing",
	StatePublished:      "published",
	StateRecorded:       "recorded",
	StatePlaylistAttach: "playlist-attach",
	StateDone:           "done",
	StateSkipped:        "skipped",
}

func (s ItemState) String() string { return stateNames[s] }

// Terminal reports whether the machine has finished with this item.
func (s ItemState) Terminal() bool { return s == StateDone || s == StateSkipped }

// Outcome is the result of the side effect performed on entering a state.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFail
)

// Effect names the side effect to perform after a transition. The machine
// itself is pure; the pipeline loop maps effects onto the injected encoder,
// publish service, and state store.
type Effect int

const (
	EffectNone Effect = iota
	EffectRender
	EffectPublish
	EffectRecord
	EffectAttach
)

// Next is the pure transition function: given the current state, the outcome
// of the last effect, and whether a playlist target is configured, it
// returns the next state and the effect to perform there.
//
// Failure routing: render and publish failures skip the item; a failed
// state-store write skips it too (the publish itself already happened and is
// logged loudly by the caller); a failed playlist attach still completes,
// because the publish was recorded before the attach was attempted.
func Next(s ItemState, out Outcome, withPlaylist bool) (ItemState, Effect) {
	switch s {
	case StatePending:
		return StateRendering, EffectRender
	case StateRendering:
		if out == OutcomeFail {
			return StateSkipped, EffectNone
		}
		return StateRendered, EffectNone
	case StateRendered:
		return StatePublishing, EffectPublish
	case StatePublishing:
		if out == OutcomeFail {
			return StateSkipped, EffectNone
		}
		return StatePublished, EffectNone
	case StatePublished:
		return StateRecorded, EffectRecord
	case StateRecorded:
		if out == OutcomeFail {
			return StateSkipped, EffectNone
		}
		if withPlaylist {
			return StatePlaylistAttach, EffectAttach
		}
		return StateDone, EffectNone
	case StatePlaylistAttach:
		return StateDone, EffectNone
	default: // Done, Skipped
		return s, EffectNone
	}
}
