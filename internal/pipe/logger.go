package pipe

import (
	"log"
	"time"

	"github.com/fatih/color"
)

// Logger receives stage-level execution events. A nil Logger disables
// pipeline logging entirely.
type Logger interface {
	LogMessage(msg string)
	LogStageStart(print string, in any)
	LogStageComplete(success bool, elapsed time.Duration, print string, out any)
	LogStageError(e *StageError)
}

// DefaultLogger prints one color-coded line per completed stage.
type DefaultLogger struct{}

func (l DefaultLogger) LogMessage(msg string) {
	log.Print(msg)
}

func (l DefaultLogger) LogStageStart(print string, in any) {
	// Ignore
}

func (l DefaultLogger) LogStageComplete(success bool, elapsed time.Duration, print string, out any) {

	// Column 1: Success or failure
	lbl := color.New(color.FgWhite).Add(color.BgGreen).Sprintf(" OK  ")
	if !success {
		lbl = color.New(color.FgWhite).Add(color.BgRed).Sprintf(" ERR ")
	}

	// Column 2: Time elapsed
	tclr := color.New(color.FgWhite, color.Faint)
	if elapsed > time.Millisecond {
		tclr = color.New(color.FgWhite).Add(color.BgCyan)
	}
	time := tclr.Sprintf("%13v", elapsed)

	// Column 3: Stage print

	log.Print("|" + lbl + "| " + time + " | " + print)
}

func (l DefaultLogger) LogStageError(e *StageError) {
	log.Printf("")
	if obj, ok := e.Obj.(H); ok {
		log.Printf("Error: %v", obj["error"])
	}
	log.Printf("")
}
