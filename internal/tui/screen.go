package tui

import (
	"sync"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/controller"
)

// Screen is the terminal rendering surface. The controller writes to it from
// whichever goroutine delivers input or a response; View reads it.
type Screen struct {
	mu sync.Mutex

	current  string
	previous string
	active   calculator.Operation
	banner   string
	visible  bool
	focused  controller.Field
	inFlight int
}

func NewScreen() *Screen {
	return &Screen{current: "0"}
}

func (s *Screen) ShowCurrent(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = text
}

func (s *Screen) ShowPrevious(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous = text
}

func (s *Screen) SetActiveOperation(op calculator.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = op
}

func (s *Screen) ShowError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = message
	s.visible = true
}

func (s *Screen) HideError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

func (s *Screen) Focus(field controller.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = field
}

func (s *Screen) beginFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
}

func (s *Screen) endFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight > 0 {
		s.inFlight--
	}
}

// frame is an immutable copy of the screen for one render.
type frame struct {
	current  string
	previous string
	active   calculator.Operation
	banner   string
	focused  controller.Field
	busy     bool
}

func (s *Screen) frame() frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := frame{
		current:  s.current,
		previous: s.previous,
		active:   s.active,
		focused:  s.focused,
		busy:     s.inFlight > 0,
	}
	if s.visible {
		f.banner = s.banner
	}
	return f
}
