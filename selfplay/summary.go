package selfplay

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders a short report of the run.
func (r Result) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Run %s\n\n", r.RunID)

	switch r.Outcome {
	case OutcomeWon:
		sb.WriteString("The snake **filled the board**.\n\n")
	case OutcomeLost:
		sb.WriteString("The snake **trapped itself**.\n\n")
	case OutcomeCapped:
		sb.WriteString("The run hit the **step limit** before ending.\n\n")
	}

	final := r.Final()
	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Outcome | %s |\n", r.Outcome)
	fmt.Fprintf(&sb, "| Turns | %d |\n", r.Turns)
	fmt.Fprintf(&sb, "| Food eaten | %d |\n", r.FoodEaten)
	fmt.Fprintf(&sb, "| Final length | %d |\n", len(final.Snake()))
	fmt.Fprintf(&sb, "| Cells | %d |\n", len(final.Cells))
	fmt.Fprintf(&sb, "| Simulated in | %s |\n", r.Duration.Round(time.Microsecond))
	return sb.String()
}
