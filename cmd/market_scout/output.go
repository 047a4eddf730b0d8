package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"market_scout/internal/domain/entity"
	"market_scout/internal/pkg/utils"
)

func printPrice(w io.Writer, asset, currency string, price float64) {
	fmt.Fprintf(w, "Current %s price: %s %s\n", asset, utils.FormatPrice(price), strings.ToUpper(currency))
}

func printScan(w io.Writer, result entity.ScanResult, limit int, err error) {
	if err != nil {
		fmt.Fprintf(w, "\nMarket scan failed, no results: %v\n", err)
		return
	}
	if len(result.Quotes) == 0 {
		fmt.Fprintf(w, "\nNo assets are %s or more below their all-time high.\n", utils.FormatPercent(result.Threshold))
		return
	}

	quotes := result.Top(limit)
	fmt.Fprintf(w, "\nTop %d of %d assets at least %s below their all-time high (%d pages scanned):\n",
		len(quotes), len(result.Quotes), utils.FormatPercent(result.Threshold), result.PagesFetched)

	cur := strings.ToUpper(result.Currency)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "#\tSymbol\tName\tPrice %s\tATH %s\tDrop\tMarket cap %s\t\n", cur, cur, cur)
	for i, q := range quotes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1, q.Symbol, q.Name,
			utils.FormatPrice(q.CurrentPrice),
			utils.FormatPrice(q.AllTimeHigh),
			utils.FormatPercent(q.DropPercentage),
			utils.FormatPrice(q.MarketCap))
	}
	tw.Flush()
}

func printWallets(w io.Writer, results []walletOutcome) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWallets:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(tw, "  %s\t-\t%v\n", r.wallet.Address, r.err)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t(%s)\n", r.classification.Address, r.classification.Chain, r.classification.Source)
	}
	tw.Flush()
}

func printValuation(w io.Writer, v entity.PortfolioValuation) {
	cur := strings.ToUpper(v.Currency)
	fmt.Fprintf(w, "\nPortfolio (%s):\n", cur)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, item := range v.Items {
		fmt.Fprintf(tw, "  %s\t%s\tx %s\t= %s\t\n",
			item.AssetID,
			item.Amount.String(),
			utils.FormatAmount(item.Price, 2),
			utils.FormatAmount(item.Value, 2))
	}
	tw.Flush()
	fmt.Fprintf(w, "  Total: %s %s\n", utils.FormatAmount(v.Total, 2), cur)
	for _, e := range v.Errors {
		fmt.Fprintf(w, "  ! %s: %s\n", e.AssetID, e.Message)
	}
}
