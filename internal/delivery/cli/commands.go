package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/walkthrough/internal/domain/entity"
	"github.com/yourusername/walkthrough/internal/pkg/mathutil"
	"github.com/yourusername/walkthrough/internal/pkg/timeutil"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (h *Handler) addProduct(ctx context.Context, p entity.Product) error {
	if err := h.catalogUseCase.AddProduct(ctx, p); err != nil {
		return h.reportError("Error while adding product", err)
	}
	h.success("Product %s added successfully to %s.", p.Name, h.opts.ProductsCSV)
	return nil
}

func (h *Handler) syncCatalog(ctx context.Context) error {
	if _, err := h.catalogUseCase.SyncJSON(ctx); err != nil {
		return h.reportFileError(h.opts.ProductsCSV, err)
	}
	h.success("Successfully converted %s to %s", h.opts.ProductsCSV, h.opts.ProductsJSON)
	return nil
}

func (h *Handler) writeLog(ctx context.Context, message string) error {
	if _, err := h.logUseCase.Write(ctx, message); err != nil {
		return h.reportError("An unexpected error occurred while writing to the log file", err)
	}
	h.success("Log message written successfully.")
	return nil
}

func (h *Handler) runAddProduct(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return usagef("add-product takes 4 arguments, got %d", len(args))
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return usagef("price %q is not a number", args[2])
	}
	stock, err := strconv.Atoi(args[3])
	if err != nil {
		return usagef("stock %q is not a whole number", args[3])
	}

	p := entity.Product{ProductID: args[0], Name: args[1], Price: price, Stock: stock}
	if err := h.addProduct(ctx, p); err != nil {
		return err
	}
	return h.syncCatalog(ctx)
}

func (h *Handler) runConvert(ctx context.Context, args []string) error {
	fs := newFlagSet("convert")
	src := fs.String("src", h.opts.ProductsCSV, "source CSV file")
	dst := fs.String("dst", h.opts.ProductsJSON, "destination JSON file")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	n, err := h.fileUseCase.ConvertCSVToJSON(ctx, *src, *dst)
	if err != nil {
		return h.reportFileError(*src, err)
	}
	h.success("Successfully converted %s to %s (%d records)", *src, *dst, n)
	return nil
}

func (h *Handler) runProducts(ctx context.Context, args []string) error {
	products, err := h.catalogUseCase.GetAll(ctx)
	if err != nil {
		return h.reportFileError(h.opts.ProductsCSV, err)
	}

	table := tablewriter.NewWriter(h.out)
	table.SetHeader(entity.ProductHeader)
	for _, p := range products {
		table.Append(p.Row())
	}
	table.SetCaption(true, fmt.Sprintf("%d products in %s", len(products), h.opts.ProductsCSV))
	table.Render()
	return nil
}

func (h *Handler) runExportXLSX(ctx context.Context, args []string) error {
	fs := newFlagSet("export-xlsx")
	out := fs.String("o", h.opts.ProductsXLSX, "destination workbook")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	n, err := h.catalogUseCase.ExportSpreadsheet(ctx, *out)
	if err != nil {
		return h.reportFileError(h.opts.ProductsCSV, err)
	}
	h.success("Exported %d products to %s", n, *out)
	return nil
}

func (h *Handler) runImportXLSX(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("import-xlsx takes one workbook path")
	}

	catalog, err := h.catalogUseCase.ImportSpreadsheet(ctx, args[0])
	if err != nil {
		return h.reportError("Error while importing products", err)
	}
	h.success("Imported %d products from %s into %s", len(catalog.Products), catalog.Source, h.opts.ProductsCSV)
	return nil
}

func (h *Handler) runLog(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("log needs a message")
	}
	return h.writeLog(ctx, strings.Join(args, " "))
}

func (h *Handler) runLogs(ctx context.Context, args []string) error {
	fs := newFlagSet("logs")
	limit := fs.Int("n", 10, "number of entries, 0 for all")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *limit < 0 {
		return usagef("-n must not be negative")
	}

	entries, err := h.logUseCase.History(ctx, *limit)
	if err != nil {
		return h.reportError("Error while reading the journal", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(h.out, "No log entries yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(h.out, e.Line())
	}
	return nil
}

func (h *Handler) runArchiveLog(ctx context.Context, args []string) error {
	dst, n, err := h.logUseCase.Archive(ctx)
	if err != nil {
		return h.reportError("Error while archiving the log", err)
	}
	h.success("Archived %d bytes to %s", n, dst)
	return nil
}

func (h *Handler) runInterest(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return usagef("interest takes 4 arguments, got %d", len(args))
	}

	nums := make([]float64, 0, 4)
	for i, a := range args {
		if i == 2 {
			continue
		}
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return usagef("%q is not a number", a)
		}
		nums = append(nums, v)
	}
	periods, err := strconv.Atoi(args[2])
	if err != nil {
		return usagef("periods %q is not a whole number", args[2])
	}

	return h.printInterest(mathutil.InterestInput{
		Principal: nums[0],
		Rate:      nums[1],
		Periods:   periods,
		Years:     nums[2],
	})
}

func (h *Handler) runAge(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("age takes one date")
	}
	now := h.opts.Now()
	birth, err := time.ParseInLocation("2006-01-02", args[0], now.Location())
	if err != nil {
		return usagef("date %q is not YYYY-MM-DD", args[0])
	}

	fmt.Fprintf(h.out, "Age is: %d years\n", timeutil.CalculateAge(birth, now))
	return nil
}

func (h *Handler) runClock(ctx context.Context, args []string) error {
	h.section("Live clock (Ctrl+C to stop)")
	return timeutil.RunClock(ctx, h.out, h.opts.ClockInterval, h.opts.Now)
}
