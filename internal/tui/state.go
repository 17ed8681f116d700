package tui

import "fmt"

// phase is the conversation panel's activity state. Exactly one backend
// request or one typing reveal may be active at a time; user actions are
// accepted only in phaseIdle.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseTyping
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseLoading:
		return "loading"
	case phaseTyping:
		return "typing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// phaseMachine enforces the legal transitions:
//
//	idle -> loading        beginRequest
//	loading -> idle        endRequest (failure, or a reply with no reveal)
//	loading -> typing      beginTyping
//	typing -> idle         endTyping
type phaseMachine struct {
	p phase
}

func (m *phaseMachine) current() phase {
	return m.p
}

// canAct reports whether a user-triggered request may start.
func (m *phaseMachine) canAct() bool {
	return m.p == phaseIdle
}

func (m *phaseMachine) beginRequest() error {
	if m.p != phaseIdle {
		return fmt.Errorf("cannot begin request while %s", m.p)
	}
	m.p = phaseLoading
	return nil
}

func (m *phaseMachine) endRequest() error {
	if m.p != phaseLoading {
		return fmt.Errorf("cannot end request while %s", m.p)
	}
	m.p = phaseIdle
	return nil
}

func (m *phaseMachine) beginTyping() error {
	if m.p != phaseLoading {
		return fmt.Errorf("cannot begin typing while %s", m.p)
	}
	m.p = phaseTyping
	return nil
}

func (m *phaseMachine) endTyping() error {
	if m.p != phaseTyping {
		return fmt.Errorf("cannot end typing while %s", m.p)
	}
	m.p = phaseIdle
	return nil
}

// reset forces the machine back to idle regardless of state. Used when a
// new reveal supersedes an in-flight one.
func (m *phaseMachine) reset() {
	m.p = phaseIdle
}
