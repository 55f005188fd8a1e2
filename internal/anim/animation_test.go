package anim

import (
	"errors"
	"testing"
)

func TestNewRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		seq   Sequence[string]
		speed int
		want  error
	}{
		{"zero speed", Frames[string]{"a"}, 0, ErrInvalidSpeed},
		{"negative speed", Frames[string]{"a"}, -3, ErrInvalidSpeed},
		{"empty frames", Frames[string]{}, 1, ErrEmptySequence},
		{"nil sequence", nil, 1, ErrEmptySequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.seq, tt.speed)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
			if a != nil {
				t.Error("New() must not return an animation on error")
			}
		})
	}
}

func TestFullCycleReturnsToFirstFrame(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for speed := 1; speed <= 4; speed++ {
			frames := make(Frames[int], n)
			for i := range frames {
				frames[i] = i * 10
			}
			a, err := New[int](frames, speed)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n*speed; i++ {
				a.Update()
			}
			if a.Index() != 0 {
				t.Errorf("N=%d S=%d: index after N*S updates = %d, want 0", n, speed, a.Index())
			}
		}
	}
}

func TestAdvanceEverySpeedTicks(t *testing.T) {
	a, err := New[string](Frames[string]{"idle", "step", "jump"}, 3)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"idle", "idle", "step", "step", "step", "jump", "jump", "jump", "idle"}
	for i, want := range expected {
		a.Update()
		if got := a.Current(); got != want {
			t.Errorf("after %d updates: frame %q, want %q", i+1, got, want)
		}
	}
}

func TestPauseFreezesAndResumesPhase(t *testing.T) {
	a, err := New[int](Frames[int]{0, 1, 2, 3}, 2)
	if err != nil {
		t.Fatal(err)
	}

	a.Update() // tick 1
	a.Update() // tick 2 -> frame 1
	a.Update() // tick 3
	if a.Index() != 1 {
		t.Fatalf("index = %d, want 1", a.Index())
	}

	a.SetPlaying(false)
	for i := 0; i < 11; i++ {
		a.Update()
	}
	if a.Index() != 1 {
		t.Errorf("paused index moved to %d", a.Index())
	}
	if a.Playing() {
		t.Error("Playing() should be false")
	}

	// 14 ticks so far; the next tick is even and advances
	a.SetPlaying(true)
	a.Update()
	if a.Index() != 1 {
		t.Errorf("tick 15 should not advance, index = %d", a.Index())
	}
	a.Update()
	if a.Index() != 2 {
		t.Errorf("tick 16 should advance to 2, index = %d", a.Index())
	}
}

func TestDeterministic(t *testing.T) {
	frames := Frames[rune]{'a', 'b', 'c', 'd', 'e'}
	a1, _ := New[rune](frames, 3)
	a2, _ := New[rune](frames, 3)
	for i := 0; i < 97; i++ {
		a1.Update()
		a2.Update()
	}
	if a1.Index() != a2.Index() || a1.Current() != a2.Current() {
		t.Errorf("same inputs diverged: %d vs %d", a1.Index(), a2.Index())
	}
	// 97 ticks / 3 = 32 advances, 32 mod 5 = 2
	if a1.Index() != 2 {
		t.Errorf("index = %d, want 2", a1.Index())
	}
}

func TestResetAndAccessors(t *testing.T) {
	a, _ := New[int](Frames[int]{7, 8}, 1)
	a.Update()
	if a.Current() != 8 {
		t.Fatalf("Current() = %d, want 8", a.Current())
	}
	a.Reset()
	if a.Index() != 0 || a.Current() != 7 {
		t.Errorf("after Reset index=%d frame=%d", a.Index(), a.Current())
	}
	if a.Len() != 2 || a.Speed() != 1 {
		t.Errorf("Len()=%d Speed()=%d", a.Len(), a.Speed())
	}
}
