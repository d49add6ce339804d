package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/analytics"
)

const (
	formatText = "text"
	formatJSON = "json"

	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

func render(w io.Writer, format string, report *analytics.Report) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return renderText(w, report)
}

// renderText prints the summary followed by one aligned table per section.
// Empty sections print a short note instead of an empty table.
func renderText(w io.Writer, r *analytics.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	s := r.Summary
	fmt.Fprintf(tw, "Run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "Capital (INR)\t%s\n", s.Capital.StringFixed(2))
	fmt.Fprintf(tw, "Total P&L (INR)\t%s\n", s.TotalPnL.StringFixed(2))
	fmt.Fprintf(tw, "Return\t%s%%\n", s.ReturnPct.StringFixed(2))
	if s.Trades > 0 {
		fmt.Fprintf(tw, "Period\t%s to %s\n", s.Duration.Start.Format(dateLayout), s.Duration.End.Format(dateLayout))
	}
	fmt.Fprintf(tw, "Duration\t%d days, %.2f months, %.2f years\n", s.Duration.Days, s.Duration.Months, s.Duration.Years)
	fmt.Fprintf(tw, "Trades\t%d (%d option, %d cash)\n", s.Trades, s.OptionTrades, s.CashTrades)

	section(tw, "Option holdings", len(r.OptionHoldings) == 0, "No option trades")
	if len(r.OptionHoldings) > 0 {
		fmt.Fprintln(tw, "Instrument\tStrike\tExpiry\tEntry\tExit\tDays\tMonths\tTrades")
		for _, h := range r.OptionHoldings {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%d\n",
				h.Instrument, h.Strike, h.Expiry,
				h.EntryTime.Format(timeLayout), h.ExitTime.Format(timeLayout),
				h.HoldingDays, h.HoldingMonths, h.Trades)
		}
	}

	section(tw, "Cash holdings", len(r.CashHoldings) == 0, "No closed cash positions")
	if len(r.CashHoldings) > 0 {
		fmt.Fprintln(tw, "Instrument\tQuantity\tEntry\tExit\tDays\tMonths")
		for _, p := range r.CashHoldings {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\n",
				p.Instrument, p.Quantity,
				p.EntryTime.Format(timeLayout), p.ExitTime.Format(timeLayout),
				p.HoldingDays, p.HoldingMonths)
		}
	}

	if len(r.OpenLots) > 0 {
		section(tw, "Open lots", false, "")
		fmt.Fprintln(tw, "Instrument\tRemaining\tEntry")
		for _, l := range r.OpenLots {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Instrument, l.Remaining, l.EntryTime.Format(timeLayout))
		}
	}

	if len(r.Unmatched) > 0 {
		section(tw, "Unmatched closes", false, "")
		fmt.Fprintln(tw, "Instrument\tQuantity\tTime")
		for _, u := range r.Unmatched {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Instrument, u.Quantity, u.Time.Format(timeLayout))
		}
	}

	section(tw, "Monthly option P&L", len(r.MonthlyContracts) == 0, "No option trades")
	if len(r.MonthlyContracts) > 0 {
		fmt.Fprintln(tw, "Month\tInstrument\tStrike\tExpiry\tType\tContracts\tP&L")
		for _, b := range r.MonthlyContracts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				b.Month, b.Instrument, b.Strike, b.Expiry, b.OptionType, b.Contracts, b.ProfitLoss.StringFixed(2))
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Month\tP&L")
		for _, m := range r.MonthlyTotals {
			fmt.Fprintf(tw, "%s\t%s\n", m.Month, m.ProfitLoss.StringFixed(2))
		}
	}

	st := r.Statistics
	section(tw, "Statistics", false, "")
	fmt.Fprintf(tw, "Max drawdown\t%.2f\n", st.MaxDrawdown)
	fmt.Fprintf(tw, "Monthly mean\t%.2f\n", st.MonthlyMean)
	fmt.Fprintf(tw, "Monthly std dev\t%.2f\n", st.MonthlyStdDev)
	fmt.Fprintf(tw, "Profitable / losing months\t%d / %d\n", st.ProfitableMonths, st.LosingMonths)
	if st.BestMonth != nil {
		fmt.Fprintf(tw, "Best month\t%s (%s)\n", st.BestMonth.Month, st.BestMonth.ProfitLoss.StringFixed(2))
		fmt.Fprintf(tw, "Worst month\t%s (%s)\n", st.WorstMonth.Month, st.WorstMonth.ProfitLoss.StringFixed(2))
	}

	return tw.Flush()
}

func section(w io.Writer, title string, empty bool, note string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	if empty {
		fmt.Fprintln(w, note)
	}
}
