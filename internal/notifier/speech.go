package notifier

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

const speechTimeout = 30 * time.Second

// Runner executes an external command to completion.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Speech reads interruptions aloud through a text-to-speech command such as
// espeak or say. The message is passed as the last argument.
type Speech struct {
	command string
	args    []string
	run     Runner
	logger  *slog.Logger

	wg sync.WaitGroup
}

func NewSpeech(command string, args []string, logger *slog.Logger) *Speech {
	return &Speech{
		command: command,
		args:    args,
		run:     execRunner,
		logger:  logger.With("component", "speech"),
	}
}

func (s *Speech) Present(message string) {
	args := append(append([]string{}, s.args...), message)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()

		if err := s.run(ctx, s.command, args...); err != nil {
			s.logger.Warn("speech failed", "command", s.command, "error", err)
		}
	}()
}

// Wait blocks until every started utterance has finished.
func (s *Speech) Wait() {
	s.wg.Wait()
}
