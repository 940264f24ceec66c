package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/pkg/mathutil"
	"github.com/yourusername/walkthrough/internal/pkg/stringutil"
	"github.com/yourusername/walkthrough/internal/pkg/timeutil"
)

// ExampleProduct is appended by the file lesson's first assignment.
var ExampleProduct = entity.Product{ProductID: "P004", Name: "Tablet", Price: 299.99, Stock: 25}

// ExampleLogMessages are written by the file lesson's second assignment.
var ExampleLogMessages = []string{
	"Application started.",
	"An error occurred: Unable to connect to the database.",
	"Application closed.",
}

// ExampleBirthDate is the birth date of the age example.
var ExampleBirthDate = timeutil.Date(1999, time.June, 15, time.Local)

// ExampleInterest are the terms of the compound interest example.
var ExampleInterest = mathutil.InterestInput{Principal: 1000, Rate: 0.05, Periods: 4, Years: 5}

var showcaseInventory = [][]string{
	{"Laptop", "$999", "10"},
	{"Smartphone", "$699", "25"},
	{"Tablet", "$299", "30"},
}

// runAll steps continue after a failed step; the clock runs last and ends
// the lesson when interrupted.
func (h *Handler) runAll(ctx context.Context, args []string) error {
	var failed bool
	for _, step := range []func(*Handler, context.Context, []string) error{
		(*Handler).runModules,
		(*Handler).runShowcase,
		(*Handler).runFiles,
		(*Handler).runMath,
	} {
		if err := step(h, ctx, nil); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !errors.Is(err, errReported) {
				h.reportError("An unexpected error occurred", err)
			}
			failed = true
		}
	}

	if err := h.runClock(ctx, nil); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

func (h *Handler) runModules(ctx context.Context, args []string) error {
	h.section("Packages and modules")
	fmt.Fprintln(h.out, "A package is a directory of .go files compiled together; a module is a tree of packages versioned by go.mod.")

	num := 5
	fmt.Fprintf(h.out, "The square of %d is: %d\n", num, mathutil.Square(num))

	text := "Hello, World!"
	fmt.Fprintf(h.out, "The reverse of '%s' is: '%s'\n", text, stringutil.Reverse(text))

	h.section("Managing dependencies")
	steps := [][]string{
		{"install", "go get github.com/fatih/color"},
		{"list", "go list -m all"},
		{"uninstall", "go get github.com/fatih/color@none && go mod tidy"},
	}
	for _, s := range steps {
		fmt.Fprintf(h.out, "  %-10s %s\n", s[0], s[1])
	}
	return nil
}

func (h *Handler) runDeps(ctx context.Context, args []string) error {
	h.section("Linked modules")

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("build info is not available in this binary")
	}

	table := tablewriter.NewWriter(h.out)
	table.SetHeader([]string{"Module", "Version"})
	table.Append([]string{info.Main.Path, info.Main.Version})
	for _, dep := range info.Deps {
		version := dep.Version
		if dep.Replace != nil {
			version = fmt.Sprintf("%s => %s %s", dep.Version, dep.Replace.Path, dep.Replace.Version)
		}
		table.Append([]string{dep.Path, version})
	}
	table.SetCaption(true, fmt.Sprintf("%d dependencies, built with %s", len(info.Deps), info.GoVersion))
	table.Render()
	return nil
}

func (h *Handler) runShowcase(ctx context.Context, args []string) error {
	h.section("Third-party libraries")

	fmt.Fprintf(h.out, "Hello, %s\n", color.New(color.FgMagenta, color.Bold).Sprint("World!"))

	const steps = 100
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(h.out),
		progressbar.OptionSetDescription("Processing..."),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(h.out) }),
	)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(h.opts.ProgressDelay):
		}
		if err := bar.Add(1); err != nil {
			return fmt.Errorf("progress bar: %w", err)
		}
	}

	table := tablewriter.NewWriter(h.out)
	table.SetHeader([]string{"Product", "Price", "Stock"})
	table.AppendBulk(showcaseInventory)
	table.SetCaption(true, "Product Inventory")
	table.Render()
	return nil
}

func (h *Handler) runFiles(ctx context.Context, args []string) error {
	var failed bool
	fail := func(prefix string, err error) {
		h.reportError(prefix, err)
		failed = true
	}

	h.section("Plain text files")
	if content, err := h.fileUseCase.TextRoundTrip(ctx); err != nil {
		fail("Error", err)
	} else {
		fmt.Fprintln(h.out, content)
	}

	h.section("CSV files")
	if rows, err := h.fileUseCase.PeopleRoundTrip(ctx); err != nil {
		fail("Error", err)
	} else {
		for _, row := range rows {
			fmt.Fprintln(h.out, row)
		}
	}

	h.section("JSON data")
	if person, err := h.fileUseCase.PersonRoundTrip(ctx); err != nil {
		fail("Error", err)
	} else {
		fmt.Fprintf(h.out, "%+v\n", person)
	}
	if users, err := h.fileUseCase.UsersRoundTrip(ctx); err != nil {
		fail("Error", err)
	} else {
		for _, u := range users {
			fmt.Fprintf(h.out, "%s (%d): %s\n", u.Name, u.Age, u.Email)
		}
	}

	h.section("Assignment: CSV to JSON")
	if err := h.addProduct(ctx, ExampleProduct); err != nil {
		failed = true
	}
	if err := h.syncCatalog(ctx); err != nil {
		failed = true
	}

	h.section("Assignment: log writer")
	for _, msg := range ExampleLogMessages {
		if err := h.writeLog(ctx, msg); err != nil {
			failed = true
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed {
		return errReported
	}
	return nil
}

func (h *Handler) runMath(ctx context.Context, args []string) error {
	h.section("Math")
	fmt.Fprintln(h.out, "The square root of 16 is:", math.Sqrt(16))
	fmt.Fprintln(h.out, "Pi is:", math.Pi)
	fmt.Fprintln(h.out, "Euler's number is:", math.E)
	fmt.Fprintln(h.out, "Cosine of pi is:", math.Cos(math.Pi))
	fmt.Fprintf(h.out, "The area of the circle is: %.2f\n", mathutil.CircleArea(5))

	h.section("Dates and times")
	now := h.opts.Now()
	fmt.Fprintln(h.out, "Current date and time:", now.Format(timeutil.ClockLayout))
	fmt.Fprintln(h.out, "Year:", now.Year())
	fmt.Fprintln(h.out, "Month:", int(now.Month()))
	fmt.Fprintln(h.out, "Day:", now.Day())
	fmt.Fprintln(h.out, "Days until new year:", timeutil.DaysUntil(timeutil.NextNewYear(now), now))
	fmt.Fprintln(h.out, "Formatted date and time:", now.Format(timeutil.DisplayLayout))

	h.section("Practical applications")
	fmt.Fprintf(h.out, "Age is: %d years\n", timeutil.CalculateAge(ExampleBirthDate, now))

	h.section("Assignment: compound interest")
	return h.printInterest(ExampleInterest)
}

func (h *Handler) printInterest(in mathutil.InterestInput) error {
	amount, err := mathutil.CompoundInterest(in)
	if err != nil {
		return h.reportError("Error", err)
	}
	fmt.Fprintf(h.out, "The final amount after %s years is: $%.2f\n", formatNumber(in.Years), amount)
	return nil
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
