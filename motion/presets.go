package motion

import "time"

const presetDuration = 600 * time.Millisecond

// Preset is a named group of transitions that run together.
type Preset struct {
	Name        string
	Transitions []Transition
}

// Value returns the current value of property p, or def when the preset
// does not drive p.
func (p Preset) Value(prop Property, elapsed time.Duration, def float64) float64 {
	for _, t := range p.Transitions {
		if t.Property == prop {
			return t.Value(elapsed)
		}
	}
	return def
}

// Done reports whether every transition in the preset has settled.
func (p Preset) Done(elapsed time.Duration) bool {
	for _, t := range p.Transitions {
		if !t.Done(elapsed) {
			return false
		}
	}
	return true
}

// Reduced returns a copy of p with every transition reduced.
func (p Preset) Reduced() Preset {
	out := Preset{Name: p.Name, Transitions: make([]Transition, len(p.Transitions))}
	for i, t := range p.Transitions {
		out.Transitions[i] = Reduce(t)
	}
	return out
}

func FadeIn() Preset {
	return Preset{Name: "fadeIn", Transitions: []Transition{
		{Property: Opacity, From: 0, To: 1, Duration: presetDuration, Easing: EaseOut},
		{Property: TranslateY, From: 20, To: 0, Duration: presetDuration, Easing: EaseOut},
	}}
}

func SlideInLeft() Preset {
	return Preset{Name: "slideInLeft", Transitions: []Transition{
		{Property: Opacity, From: 0, To: 1, Duration: presetDuration, Easing: EaseOut},
		{Property: TranslateX, From: -50, To: 0, Duration: presetDuration, Easing: EaseOut},
	}}
}

func SlideInRight() Preset {
	return Preset{Name: "slideInRight", Transitions: []Transition{
		{Property: Opacity, From: 0, To: 1, Duration: presetDuration, Easing: EaseOut},
		{Property: TranslateX, From: 50, To: 0, Duration: presetDuration, Easing: EaseOut},
	}}
}

func ScaleIn() Preset {
	return Preset{Name: "scaleIn", Transitions: []Transition{
		{Property: Opacity, From: 0, To: 1, Duration: presetDuration, Easing: EaseOut},
		{Property: Scale, From: 0.8, To: 1, Duration: presetDuration, Easing: EaseOut},
	}}
}

// PresetByName looks up one of the built-in presets.
func PresetByName(name string) (Preset, bool) {
	switch name {
	case "fadeIn":
		return FadeIn(), true
	case "slideInLeft":
		return SlideInLeft(), true
	case "slideInRight":
		return SlideInRight(), true
	case "scaleIn":
		return ScaleIn(), true
	}
	return Preset{}, false
}
