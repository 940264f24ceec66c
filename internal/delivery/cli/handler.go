package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/yourusername/walkthrough/internal/infrastructure/fileio"
	"github.com/yourusername/walkthrough/internal/usecase"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Options are the paths and timings the commands use.
type Options struct {
	DataDir       string
	ProductsCSV   string
	ProductsJSON  string
	ProductsXLSX  string
	ClockInterval time.Duration
	ProgressDelay time.Duration
	Now           func() time.Time
}

type command struct {
	usage string
	help  string
	run   func(h *Handler, ctx context.Context, args []string) error
}

// usageError is returned for bad arguments and maps to ExitUsage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

// Handler runs one subcommand per invocation and writes narration to out.
type Handler struct {
	out            io.Writer
	opts           Options
	fileUseCase    usecase.FileUseCase
	catalogUseCase usecase.CatalogUseCase
	logUseCase     usecase.LogUseCase
	logger         *slog.Logger
	commands       map[string]command
}

// NewHandler yangi CLI handler yaratish
func NewHandler(
	out io.Writer,
	opts Options,
	fileUseCase usecase.FileUseCase,
	catalogUseCase usecase.CatalogUseCase,
	logUseCase usecase.LogUseCase,
	logger *slog.Logger,
) *Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &Handler{
		out:            out,
		opts:           opts,
		fileUseCase:    fileUseCase,
		catalogUseCase: catalogUseCase,
		logUseCase:     logUseCase,
		logger:         logger,
	}
	h.commands = map[string]command{
		"all":         {"all", "run the module, file and math lessons, then the clock", (*Handler).runAll},
		"modules":     {"modules", "package organization and the module workflow", (*Handler).runModules},
		"deps":        {"deps", "list the modules linked into this binary", (*Handler).runDeps},
		"showcase":    {"showcase", "coloured text, a progress bar and a table", (*Handler).runShowcase},
		"files":       {"files", "text, CSV and JSON file lesson with its assignments", (*Handler).runFiles},
		"math":        {"math", "math and datetime lesson with its assignments", (*Handler).runMath},
		"add-product": {"add-product ID NAME PRICE STOCK", "append a product to the CSV catalog", (*Handler).runAddProduct},
		"convert":     {"convert [-src file.csv] [-dst file.json]", "convert a CSV file to a JSON array", (*Handler).runConvert},
		"products":    {"products", "print the CSV catalog", (*Handler).runProducts},
		"export-xlsx": {"export-xlsx [-o file.xlsx]", "write the catalog to a workbook", (*Handler).runExportXLSX},
		"import-xlsx": {"import-xlsx FILE.xlsx", "append the products of a workbook", (*Handler).runImportXLSX},
		"log":         {"log MESSAGE...", "append a timestamped line to the log file", (*Handler).runLog},
		"logs":        {"logs [-n N]", "print the newest journal entries", (*Handler).runLogs},
		"archive-log": {"archive-log", "write a zstd copy of the log file", (*Handler).runArchiveLog},
		"interest":    {"interest PRINCIPAL RATE PERIODS YEARS", "compound interest, rounded to cents", (*Handler).runInterest},
		"age":         {"age YYYY-MM-DD", "age in whole years as of today", (*Handler).runAge},
		"clock":       {"clock", "print the current time every interval until interrupted", (*Handler).runClock},
	}
	return h
}

// Run executes the subcommand named by args[0] and returns the exit code.
func (h *Handler) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		h.printUsage()
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	cmd, ok := h.commands[args[0]]
	if !ok {
		fmt.Fprintf(h.out, "unknown command %q\n\n", args[0])
		h.printUsage()
		return ExitUsage
	}

	h.logger.Debug("running command", slog.String("command", args[0]))
	err := cmd.run(h, ctx, args[1:])

	var uerr *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &uerr):
		fmt.Fprintf(h.out, "%s\nusage: walkthrough %s\n", uerr.msg, cmd.usage)
		return ExitUsage
	case errors.Is(err, errReported):
		return ExitFailure
	case errors.Is(err, context.Canceled):
		h.logger.Info("interrupted", slog.String("command", args[0]))
		return ExitOK
	default:
		h.reportError("An unexpected error occurred", err)
		return ExitFailure
	}
}

func (h *Handler) printUsage() {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("usage: walkthrough <command> [args]\n\ncommands:\n")
	for _, name := range names {
		c := h.commands[name]
		sb.WriteString(fmt.Sprintf("  %-42s %s\n", c.usage, c.help))
	}
	fmt.Fprint(h.out, sb.String())
}

func (h *Handler) section(title string) {
	bold := color.New(color.Bold)
	fmt.Fprintln(h.out)
	bold.Fprintln(h.out, title)
	fmt.Fprintln(h.out, strings.Repeat("-", len(title)))
}

func (h *Handler) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(h.out, format+"\n", args...)
}

// reportError prints prefix and err and marks the failure as reported.
func (h *Handler) reportError(prefix string, err error) error {
	color.New(color.FgRed).Fprintf(h.out, "%s: %v\n", prefix, err)
	h.logger.Debug("command step failed", slog.String("error", err.Error()))
	return errReported
}

// reportFileError distinguishes a missing source from any other fault.
func (h *Handler) reportFileError(path string, err error) error {
	if errors.Is(err, fileio.ErrFileNotFound) {
		color.New(color.FgRed).Fprintf(h.out, "Error: The file %s was not found.\n", path)
		return errReported
	}
	return h.reportError("An unexpected error occurred", err)
}
