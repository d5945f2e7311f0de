// Package viewer plays a recorded run back in the terminal, either as an
// interactive bubbletea program or as plain frames for pipes and logs.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/brensch/snakesaver/game"
	"github.com/brensch/snakesaver/render"
)

const gameOver = "Game over"

type Options struct {
	FrameDelay time.Duration
	Colour     bool
	// Outcome is shown under the final frame, e.g. "won".
	Outcome string
}

type tickMsg time.Time

// Model steps through frames on a timer. Space pauses, left and right
// step while paused, q quits.
type Model struct {
	frames []game.BoardState
	pos    int
	paused bool
	done   bool
	opts   Options
	styles render.Styles
}

func New(frames []game.BoardState, opts Options) Model {
	return Model{
		frames: frames,
		opts:   opts,
		styles: render.DefaultStyles(),
		done:   len(frames) == 0,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.FrameDelay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "left", "h":
			if m.paused && m.pos > 0 {
				m.pos--
			}
		case "right", "l":
			if m.paused && m.pos < len(m.frames)-1 {
				m.pos++
			}
		}
		return m, nil
	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		if m.pos >= len(m.frames)-1 {
			m.done = true
			return m, tea.Quit
		}
		m.pos++
		return m, m.tick()
	}
	return m, nil
}

// Frame is the index of the frame on screen.
func (m Model) Frame() int { return m.pos }

func (m Model) Paused() bool { return m.paused }

func (m Model) Done() bool { return m.done }

func (m Model) View() string {
	if len(m.frames) == 0 {
		return gameOver + "\n"
	}
	var sb strings.Builder
	s := m.frames[m.pos]
	sb.WriteString(header(s))
	if m.opts.Colour {
		sb.WriteString(render.Styled(s, m.styles))
	} else {
		sb.WriteString(render.Text(s))
	}
	switch {
	case m.done:
		sb.WriteString(footer(m.opts.Outcome))
	case m.paused:
		sb.WriteString("\npaused: left/right to step, space to resume, q to quit\n")
	default:
		sb.WriteString("\nspace to pause, q to quit\n")
	}
	return sb.String()
}

func header(s game.BoardState) string {
	return fmt.Sprintf("Turn %d  Length %d\n\n", s.Turn, len(s.Snake()))
}

func footer(outcome string) string {
	if outcome == "" {
		return "\n" + gameOver + "\n"
	}
	return fmt.Sprintf("\n%s (%s)\n", gameOver, outcome)
}

// Play runs the interactive viewer until the last frame has been shown,
// the user quits or ctx is cancelled.
func Play(ctx context.Context, in io.Reader, out io.Writer, frames []game.BoardState, opts Options) error {
	p := tea.NewProgram(New(frames, opts), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// PlayPlain writes every frame to w in order, waiting FrameDelay between
// them, then a closing "Game over" line.
func PlayPlain(ctx context.Context, w io.Writer, frames []game.BoardState, opts Options) error {
	styles := render.DefaultStyles()
	for i, s := range frames {
		if i > 0 && opts.FrameDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.FrameDelay):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		board := render.Text(s)
		if opts.Colour {
			board = render.Styled(s, styles)
		}
		if _, err := io.WriteString(w, header(s)+board+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, strings.TrimPrefix(footer(opts.Outcome), "\n"))
	return err
}

// Interactive reports whether f is a terminal the bubbletea viewer can own.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
