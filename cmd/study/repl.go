package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

const helpText = `Commands:
  decks            list available decks
  start <deck>     start studying a deck
  r, reveal        show the answer
  c, correct       mark the card answered correctly
  i, incorrect     mark the card answered incorrectly
  n, next          view the next card
  p, prev          view the previous card
  stats            show session statistics
  progress         show deck coverage
  reset            discard the current session
  end              finish the current session
  history          list finished sessions
  help             show this help
  q, quit          exit`

// Run reads commands from in until it is exhausted, a quit command arrives
// or ctx is cancelled.
func (app *application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx = logger.WithLogger(ctx, app.logger)
	c := &console{app: app, out: out}

	if n := len(app.rejects); n > 0 {
		c.printf("Skipped %d invalid row(s); see log for details.\n", n)
	}
	c.listDecks()

	if name := app.config.Study.Deck; name != "" {
		c.start(ctx, name)
	} else {
		c.printf("Type 'start <deck>' to begin or 'help' for commands.\n")
	}

	scanner := bufio.NewScanner(in)
	for {
		c.printf("> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return nil
		}
		if quit := c.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}
	return nil
}

// console renders engine state as text.
type console struct {
	app *application
	out io.Writer
}

func (c *console) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// exec runs one command line and reports whether the loop should stop.
func (c *console) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
	engine := c.app.engine

	switch cmd {
	case "help", "h", "?":
		c.printf("%s\n", helpText)
	case "decks":
		c.listDecks()
	case "start":
		if arg == "" {
			c.printf("Usage: start <deck>\n")
			return false
		}
		c.start(ctx, arg)
	case "r", "reveal":
		if err := engine.Reveal(ctx); err != nil {
			c.fail(err)
			return false
		}
		c.showCurrent()
	case "c", "correct", "i", "incorrect":
		outcome, err := domain.ParseOutcome(cmd)
		if err != nil {
			c.fail(err)
			return false
		}
		c.mark(ctx, outcome)
	case "n", "next":
		if _, err := engine.Next(ctx); err != nil {
			c.fail(err)
			return false
		}
		c.showViewing()
	case "p", "prev":
		if _, err := engine.Prev(ctx); err != nil {
			c.fail(err)
			return false
		}
		c.showViewing()
	case "stats":
		stats, err := engine.Stats()
		if err != nil {
			c.fail(err)
			return false
		}
		c.printStats(stats)
	case "progress":
		p, err := engine.Progress()
		if err != nil {
			c.fail(err)
			return false
		}
		c.printf("Seen %d of %d cards (%.0f%%), viewing card %d\n", p.Seen, p.Total, p.Percent, p.Position)
	case "reset":
		if err := engine.Reset(ctx); err != nil {
			c.fail(err)
			return false
		}
		c.printf("Session reset.\n")
	case "end":
		summary, err := engine.EndSession(ctx)
		if err != nil {
			c.fail(err)
			return false
		}
		c.printSummary(summary)
	case "history":
		c.listHistory()
	case "q", "quit", "exit":
		if engine.Active() {
			if summary, err := engine.EndSession(ctx); err == nil {
				c.printSummary(summary)
			}
		}
		c.printf("Bye.\n")
		return true
	default:
		c.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (c *console) start(ctx context.Context, name string) {
	state, err := c.app.engine.StartSession(ctx, name)
	if err != nil {
		c.fail(err)
		return
	}
	d, _ := c.app.decks.GetDeck(state.DeckName)
	c.printf("Studying %s (%d cards, %s order).\n", state.DeckName, d.Len(), state.Policy)
	c.showCurrent()
}

func (c *console) mark(ctx context.Context, outcome domain.Outcome) {
	state, err := c.app.engine.MarkOutcome(ctx, outcome)
	if err != nil {
		c.fail(err)
		return
	}
	if state.Phase == domain.PhaseSessionComplete {
		c.printf("Deck finished.\n")
		if stats, err := c.app.engine.Stats(); err == nil {
			c.printStats(stats)
		}
		c.printf("Type 'end' to close the session or 'p' to look back.\n")
		return
	}
	c.showCurrent()
}

// showCurrent prints the live card.
func (c *console) showCurrent() {
	card, err := c.app.engine.Current()
	if err != nil {
		c.fail(err)
		return
	}
	state, err := c.app.engine.State()
	if err != nil {
		c.fail(err)
		return
	}
	c.printf("Q: %s\n", card.Front)
	if state.Revealed {
		c.printf("A: %s\n", card.Back)
		c.printf("Did you know it? (c/i)\n")
	}
}

// showViewing prints the card under the viewing pointer. Cards already
// answered are shown with both sides.
func (c *console) showViewing() {
	card, idx, err := c.app.engine.Viewing()
	if err != nil {
		c.fail(err)
		return
	}
	state, err := c.app.engine.State()
	if err != nil {
		c.fail(err)
		return
	}

	live := idx >= len(state.CursorHistory)
	c.printf("[%d] Q: %s\n", idx+1, card.Front)
	if !live || state.Revealed {
		c.printf("    A: %s\n", card.Back)
	}
	if !live && state.Phase != domain.PhaseSessionComplete {
		c.printf("    (answered earlier; 'n' returns to the current card)\n")
	}
}

func (c *console) listDecks() {
	names := c.app.decks.ListDecks()
	if len(names) == 0 {
		c.printf("No decks loaded.\n")
		return
	}
	c.printf("Decks:\n")
	for _, name := range names {
		d, err := c.app.decks.GetDeck(name)
		if err != nil {
			continue
		}
		c.printf("  %s (%d cards)\n", name, d.Len())
	}
}

func (c *console) listHistory() {
	history := c.app.engine.History()
	if len(history) == 0 {
		c.printf("No finished sessions.\n")
		return
	}
	for i, s := range history {
		status := "ended early"
		if s.Completed {
			status = "completed"
		}
		c.printf("%d. %s (%s): %d studied, %.0f%% accuracy, %s\n",
			i+1, s.DeckName, status, s.Stats.StudiedCount, s.Stats.Accuracy*100, s.Duration.Round(time.Second))
	}
}

func (c *console) printStats(stats domain.Stats) {
	c.printf("Studied %d: %d correct, %d incorrect, %.0f%% accuracy\n",
		stats.StudiedCount, stats.CorrectCount, stats.IncorrectCount, stats.Accuracy*100)
}

func (c *console) printSummary(s domain.Summary) {
	c.printf("Session on %s finished after %s.\n", s.DeckName, s.Duration.Round(time.Second))
	c.printStats(s.Stats)
}

// fail prints err in terms of the commands that would resolve it.
func (c *console) fail(err error) {
	var (
		notFound   *domain.DeckNotFoundError
		transition *domain.InvalidTransitionError
	)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		c.printf("No active session. Type 'start <deck>' first.\n")
	case errors.As(err, &notFound):
		c.printf("No deck named %q. Available: %s\n", notFound.Name, strings.Join(c.app.decks.ListDecks(), ", "))
	case errors.Is(err, domain.ErrEmptyDeck):
		c.printf("That deck has no cards.\n")
	case errors.As(err, &transition) && transition.Phase == domain.PhaseQuestionShown:
		c.printf("Reveal the answer first ('r').\n")
	case errors.As(err, &transition) && transition.Phase == domain.PhaseSessionComplete:
		c.printf("The deck is finished. Type 'end' or 'start <deck>'.\n")
	default:
		c.printf("Error: %v\n", err)
	}
}
