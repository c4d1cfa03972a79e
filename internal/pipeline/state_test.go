package pipeline

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name         string
		s            ItemState
		out          Outcome
		withPlaylist bool
		wantState    ItemState
		wantEffect   Effect
	}{
		{"pending starts render", StatePending, OutcomeOK, false, StateRendering, EffectRender},
		{"render ok", StateRendering, OutcomeOK, false, StateRendered, EffectNone},
		{"render fail skips", StateRendering, OutcomeFail, false, StateSkipped, EffectNone},
		{"rendered starts publish", StateRendered, OutcomeOK, false, StatePublishing, EffectPublish},
		{"publish ok", StatePublishing, OutcomeOK, false, StatePublished, EffectNone},
		{"publish fail skips", StatePublishing, OutcomeFail, false, StateSkipped, EffectNone},
		{"published starts record", StatePublished, OutcomeOK, false, StateRecorded, EffectRecord},
		{"record ok, no playlist", StateRecorded, OutcomeOK, false, StateDone, EffectNone},
		{"record ok, playlist configured", StateRecorded, OutcomeOK, true, StatePlaylistAttach, EffectAttach},
		{"record fail skips", StateRecorded, OutcomeFail, true, StateSkipped, EffectNone},
		{"attach ok completes", StatePlaylistAttach, OutcomeOK, true, StateDone, EffectNone},
		{"attach fail still completes", StatePlaylistAttach, OutcomeFail, true, StateDone, EffectNone},
		{"done is absorbing", StateDone, OutcomeOK, true, StateDone, EffectNone},
		{"skipped is absorbing", StateSkipped, OutcomeOK, true, StateSkipped, EffectNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotEffect := Next(tt.s, tt.out, tt.withPlaylist)
			if gotState != tt.wantState || gotEffect != tt.wantEffect {
				t.Errorf("Next(%v, %v, %v) = (%v, %v), want (%v, %v)",
					tt.s, tt.out, tt.withPlaylist, gotState, gotEffect, tt.wantState, tt.wantEffect)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	for st := StatePending; st <= StateSkipped; st++ {
		want := st == StateDone || st == StateSkipped
		if got := st.Terminal(); got != want {
			t.Errorf("%v.Terminal() = %v, want %v", st, got, want)
		}
	}
}

func TestNext_EveryStateReachesTerminal(t *testing.T) {
	// Whatever the outcomes, the machine must finish within a bounded number
	// of steps from any starting state.
	for st := StatePending; st <= StateSkipped; st++ {
		for _, out := range []Outcome{OutcomeOK, OutcomeFail} {
			s, o := st, out
			for i := 0; i < 10 && !s.Terminal(); i++ {
				s, _ = Next(s, o, true)
			}
			if !s.Terminal() {
				t.Errorf("from %v with outcome %v the machine never terminated", st, out)
			}
		}
	}
}
