// Command apply walks a renter or landlord through the application form in
// the terminal and submits it to the API.
//
//	apply renter
//	apply landlord
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/mercury-homes/lead-funnel/internal/client"
	"github.com/mercury-homes/lead-funnel/internal/pkg/config"
	"github.com/mercury-homes/lead-funnel/internal/wizard"
	"github.com/mercury-homes/lead-funnel/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{Level: "warn", Pretty: true, Service: "apply", Output: os.Stderr})

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: apply renter|landlord")
		os.Exit(2)
	}
	form, ok := formFor(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown form %q, want renter or landlord\n", os.Args[1])
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := wizard.New(form, client.New(cfg.APIURL, cfg.HTTPTimeout))
	if err := run(ctx, os.Stdin, os.Stdout, w); err != nil {
		log.Fatal().Err(err).Msg("apply failed")
	}
}

func formFor(name string) (wizard.Form, bool) {
	switch name {
	case "renter":
		return wizard.RenterForm(), true
	case "landlord":
		return wizard.LandlordForm(), true
	}
	return wizard.Form{}, false
}

// run drives w from line input until the application is accepted or in is
// exhausted. "back" goes to the previous step; an empty line keeps the
// current answer.
func run(ctx context.Context, in io.Reader, out io.Writer, w *wizard.Wizard) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "%s\n\n", w.Form().Title)

	for w.Status() != wizard.StatusComplete {
		step := w.Current()
		showStep(out, w, step)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nNothing was submitted.")
			return nil
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(line, "back") {
			if !w.Retreat() {
				fmt.Fprintln(out, "You are already on the first step.")
			}
			continue
		}

		if line != "" {
			if err := w.UpdateField(step.Field, answer(step, line)); err != nil {
				return err
			}
		}

		err := w.HandleKey(ctx, "Enter")
		var stepErr *wizard.StepError
		switch {
		case err == nil:
		case errors.As(err, &stepErr):
			fmt.Fprintf(out, "  %s\n", hintFor(stepErr))
		case errors.Is(err, wizard.ErrSubmissionFailed):
			fmt.Fprintf(out, "  %s\n", wizard.ErrSubmissionFailed)
		default:
			return err
		}
	}

	fmt.Fprintf(out, "\nThank you, %s! %s\n", w.FirstName(), w.Form().Done)
	fmt.Fprintf(out, "Reference: %s\n", w.SubmittedID())
	return nil
}

func showStep(out io.Writer, w *wizard.Wizard, step wizard.Step) {
	fmt.Fprintf(out, "[%d/%d] %s\n", w.StepIndex()+1, w.TotalSteps(), w.Prompt())
	if step.Hint != "" {
		fmt.Fprintf(out, "  %s\n", step.Hint)
	}
	for i, opt := range step.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
	}
	if current := w.Values()[step.Field]; current != "" {
		fmt.Fprintf(out, "  (current: %s)\n", current)
	} else if step.Placeholder != "" {
		fmt.Fprintf(out, "  e.g. %s\n", step.Placeholder)
	}
	fmt.Fprint(out, "> ")
}

// answer maps a numbered choice onto its option value. Anything else is
// taken literally.
func answer(step wizard.Step, line string) string {
	if len(step.Options) == 0 {
		return line
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(step.Options) {
		return step.Options[n-1].Value
	}
	return line
}

func hintFor(err *wizard.StepError) string {
	if err.Hint != "" {
		return err.Hint
	}
	return "Please answer this question to continue."
}
