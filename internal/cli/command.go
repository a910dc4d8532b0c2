package cli

import (
	"fmt"
	"github.com/maxaizer/job-tracker/internal/logger"
	log "github.com/sirupsen/logrus"
	"io"
)

type command interface {
	WithFinishCallback(func())
	Run()
	OnUserInput(input string)
	ExpectsSecret() bool
}

type inputHandler interface {
	Prompt() string
	// HandleInput returns a message to show when the input is rejected, empty otherwise.
	HandleInput(input string) string
	Secret() bool
}

type console struct {
	w io.Writer
}

func (c console) Send(text string) {
	if text == "" {
		return
	}
	if _, err := fmt.Fprintln(c.w, text); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTerminal).
			Errorf("error occurred while writing output: %v", err)
	}
}

func (c console) Sendf(format string, args ...any) {
	c.Send(fmt.Sprintf(format, args...))
}

func (c console) Prompt(label string) {
	if _, err := fmt.Fprint(c.w, label); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTerminal).
			Errorf("error occurred while writing prompt: %v", err)
	}
}

// steps walks through input handlers in order and calls onComplete after the last one.
type steps struct {
	out             console
	inputHandlers   []inputHandler
	curHandlerIndex int
	onComplete      func()
	finishCallback  func()
}

func (s *steps) WithFinishCallback(callback func()) {
	s.finishCallback = callback
}

func (s *steps) Run() {
	s.out.Send(s.inputHandlers[0].Prompt())
}

func (s *steps) ExpectsSecret() bool {
	return s.curHandlerIndex < len(s.inputHandlers) && s.inputHandlers[s.curHandlerIndex].Secret()
}

func (s *steps) OnUserInput(input string) {
	if s.curHandlerIndex >= len(s.inputHandlers) {
		return
	}

	if msg := s.inputHandlers[s.curHandlerIndex].HandleInput(input); msg != "" {
		s.out.Send(msg)
		return
	}

	s.curHandlerIndex++
	if s.curHandlerIndex < len(s.inputHandlers) {
		s.out.Send(s.inputHandlers[s.curHandlerIndex].Prompt())
		return
	}

	if s.onComplete != nil {
		s.onComplete()
	}
	if s.finishCallback != nil {
		s.finishCallback()
	}
}
