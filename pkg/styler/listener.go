package styler

// Listener receives animation events. Any field may be nil.
//
// Callbacks fire only for animated transitions; an unanimated ApplyStyle or
// ClearStyle reports nothing.
type Listener struct {
	// OnStart is called when a transition begins.
	OnStart func()
	// OnFrame is called for every delivered frame. timeFraction is the
	// linear time fraction and progress is the eased value; they are equal
	// for linear transitions.
	OnFrame func(timeFraction, progress float64)
	// OnEnd is called after a transition settles on its end matrix.
	OnEnd func()
	// OnCancel is called when a transition is superseded before settling.
	OnCancel func()
}

func (l *Listener) start() {
	if l != nil && l.OnStart != nil {
		l.OnStart()
	}
}

func (l *Listener) frame(timeFraction, progress float64) {
	if l != nil && l.OnFrame != nil {
		l.OnFrame(timeFraction, progress)
	}
}

func (l *Listener) end() {
	if l != nil && l.OnEnd != nil {
		l.OnEnd()
	}
}

func (l *Listener) cancel() {
	if l != nil && l.OnCancel != nil {
		l.OnCancel()
	}
}
