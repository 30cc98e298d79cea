package analyzer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
)

// Pager - то, что анализатору нужно от usecase.ListingController
type Pager interface {
	Navigate(ctx context.Context, path string) (*domain.ListingResult, error)
	SetPage(ctx context.Context, pageIndex int) (*domain.ListingResult, error)
	SetPageSize(ctx context.Context, pageSize int) (*domain.ListingResult, error)
}

type Options struct {
	Path     string
	Pages    int
	PageSize int
}

type PageReport struct {
	PageIndex  int
	Items      int
	Statistics domain.Statistics
}

type Report struct {
	Path       string
	Total      int
	TotalPages int
	Pages      []PageReport
	Merged     domain.Statistics
}

// Run обходит страницы 1..opts.Pages (не дальше последней) и собирает статистику.
func Run(ctx context.Context, pager Pager, opts Options) (*Report, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "Analyzer", "path": opts.Path})
	if opts.Pages < 1 {
		opts.Pages = 1
	}

	result, err := pager.Navigate(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("navigate to %q: %w", opts.Path, err)
	}
	// Navigate сохраняет прежний размер страницы, меняем его отдельно
	if opts.PageSize > 0 && opts.PageSize != result.Page.PageSize {
		if result, err = pager.SetPageSize(ctx, opts.PageSize); err != nil {
			return nil, fmt.Errorf("set page size: %w", err)
		}
	}

	report := &Report{
		Path:       result.Path,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}
	var items [][]domain.Apartment

	for {
		report.Pages = append(report.Pages, PageReport{
			PageIndex:  result.Page.PageIndex,
			Items:      len(result.Items),
			Statistics: result.Statistics,
		})
		items = append(items, result.Items)
		logger.Debug("Page analyzed", port.Fields{"page": result.Page.PageIndex, "items": len(result.Items)})

		next := result.Page.PageIndex + 1
		if next > opts.Pages || next > result.TotalPages {
			break
		}
		if result, err = pager.SetPage(ctx, next); err != nil {
			return nil, fmt.Errorf("load page %d: %w", next, err)
		}
	}

	report.Merged = domain.MergeStatistics(items...)
	logger.Info("Analysis finished", port.Fields{"pages": len(report.Pages), "apartments": report.Merged.Count})
	return report, nil
}

// Print выводит отчет таблицей.
func Print(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "path:\t%s\n", report.Path)
	fmt.Fprintf(tw, "total:\t%d (%d pages)\n\n", report.Total, report.TotalPages)

	fmt.Fprintln(tw, "PAGE\tITEMS\tPRICE AVG\tPRICE MIN\tPRICE MAX\tAREA AVG\tAREA MIN\tAREA MAX")
	for _, p := range report.Pages {
		printRow(tw, fmt.Sprint(p.PageIndex), p.Items, p.Statistics)
	}
	printRow(tw, "all", report.Merged.Count, report.Merged)

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "bedrooms:\t%s\n", formatBedrooms(report.Merged.Bedrooms))
	fmt.Fprintf(tw, "statuses:\t%s\n", formatStatuses(report.Merged.Statuses))

	return tw.Flush()
}

func printRow(w io.Writer, label string, items int, s domain.Statistics) {
	fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.1f\t%.1f\t%.1f\n",
		label, items,
		formatVND(s.Price.Avg), formatVND(s.Price.Min), formatVND(s.Price.Max),
		s.Area.Avg, s.Area.Min, s.Area.Max,
	)
}

// formatVND - "2.35 tỷ" для миллиардов, "850 tr" для миллионов
func formatVND(v float64) string {
	switch {
	case v >= float64(domain.Billion):
		return fmt.Sprintf("%.2f tỷ", v/float64(domain.Billion))
	case v >= float64(domain.Million):
		return fmt.Sprintf("%.0f tr", v/float64(domain.Million))
	case v == 0:
		return "-"
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func formatBedrooms(m map[int]int) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%dPN: %d", k, m[k])
	}
	if out == "" {
		return "-"
	}
	return out
}

func formatStatuses(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", k, m[k])
	}
	if out == "" {
		return "-"
	}
	return out
}
