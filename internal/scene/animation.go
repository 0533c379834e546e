package scene

import "math"

// DefaultStep is the fixed per-frame time increment. It is independent of
// wall-clock frame time so motion is deterministic.
const DefaultStep = 0.01

// AnimationState is the accumulated time of one instance.
type AnimationState struct {
	T float64
}

// Sway is the rotational perturbation added to an instance's base rotation.
type Sway struct {
	Yaw   float64
	Pitch float64
}

// Animator owns every instance's AnimationState. States live in an arena
// indexed by slot; Rebind discards the arena when the instance set changes.
type Animator struct {
	step   float64
	states []AnimationState
}

func NewAnimator(step float64) *Animator {
	if !(step > 0) {
		step = DefaultStep
	}
	return &Animator{step: step}
}

// Rebind drops all states and allocates n fresh slots at t=0.
func (a *Animator) Rebind(n int) {
	if n < 0 {
		n = 0
	}
	a.states = make([]AnimationState, n)
}

// Advance moves every live slot forward by one step.
func (a *Animator) Advance() {
	for i := range a.states {
		a.states[i].T += a.step
	}
}

func (a *Animator) Len() int {
	return len(a.states)
}

func (a *Animator) State(slot int) (AnimationState, bool) {
	if slot < 0 || slot >= len(a.states) {
		return AnimationState{}, false
	}
	return a.states[slot], true
}

// Sway derives the perturbation for slot. Unknown slots do not sway.
func (a *Animator) Sway(slot int) Sway {
	st, ok := a.State(slot)
	if !ok {
		return Sway{}
	}
	return SwayAt(st.T)
}

func SwayAt(t float64) Sway {
	return Sway{
		Yaw:   math.Sin(t) * 0.03,
		Pitch: math.Sin(t*0.5) * 0.01,
	}
}
