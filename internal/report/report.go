package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"fplwatch/internal/domain/player"
	"fplwatch/internal/services/pressure"
	"fplwatch/internal/services/prices"
)

// Pure rendering of pipeline results into the Telegram message texts.
// All messages are plain text and rely on fixed-width alignment, so no
// parse mode is ever applied to them.

const (
	sectionRule = "────────────────────────────────────────"
	blockRule   = "──────────────────────────────"
)

// PriceChangesMessage renders the daily price-change digest: falls first,
// then rises, separated by a rule, titled with the given date.
func PriceChangesMessage(now time.Time, falls, rises []prices.Change) string {
	return fmt.Sprintf(
		"Price Changes for %s\n\n%s\n\n%s\n\n%s",
		now.Format("2006-01-02"),
		priceSection("Price Falls 🔽", falls),
		sectionRule,
		priceSection("Price Rises 🔼", rises),
	)
}

// priceSection renders one partition as an aligned table. An empty
// partition renders the explicit "None" placeholder, never an empty body.
func priceSection(title string, changes []prices.Change) string {
	header := title + "\n\n"

	if len(changes) == 0 {
		return header + "None"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("Player          New Price     Old Price\n")

	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf(
			"%s£%-12.1f£%.1f",
			PadName(c.Player.Name),
			float64(c.Player.NowCost)/10,
			float64(c.PrevCost)/10,
		))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

// BaselineWarning is the degraded-mode message sent when yesterday's
// prices could not be loaded.
func BaselineWarning() string {
	return "⚠️ Warning: yesterday's price data is unavailable, so no comparison is possible today."
}

// PredictionsMessage renders the evening transfer-pressure predictions
func PredictionsMessage(rising, falling []pressure.Candidate) string {
	return fmt.Sprintf(
		"🔮 Price Predictions for Tonight\n─────────────────────────\n\n%s\n\n%s\n\n%s\n\n⏰ Prices update around 2:30am UK",
		predictionSection("Likely to RISE tonight 📈", rising),
		blockRule,
		predictionSection("Likely to FALL tonight 📉", falling),
	)
}

func predictionSection(title string, candidates []pressure.Candidate) string {
	header := title + "\n\n"

	if len(candidates) == 0 {
		return header + "No strong predictions"
	}

	entries := make([]string, 0, len(candidates))
	for _, c := range candidates {
		p := c.Player
		entries = append(entries, fmt.Sprintf(
			"%s (%s)\n  %s | %s%% | Net: %s",
			p.Name,
			p.Team,
			FormatPrice(p.NowCost),
			p.SelectedBy.StringFixed(1),
			signedComma(p.NetTransfers()),
		))
	}

	return header + strings.Join(entries, "\n\n")
}

// signedComma renders a net transfer count comma-grouped with an
// explicit plus on positive values.
func signedComma(n int) string {
	if n > 0 {
		return "+" + humanize.Comma(int64(n))
	}
	return humanize.Comma(int64(n))
}

// TrendsMessage renders the gameweek transfer leaderboards
func TrendsMessage(now time.Time, topIn, topOut []player.Player) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Transfer Trends - %s\n\n", now.Format("2006-01-02"))

	b.WriteString("🔥 Most Transferred IN\n\n")
	for i, p := range topIn {
		fmt.Fprintf(&b, "%d. %s — %s in (%s net)\n",
			i+1, p.Name, FormatCount(p.TransfersIn), SignedCount(p.NetTransfers()))
	}

	b.WriteString("\n" + blockRule + "\n\n")

	b.WriteString("📉 Most Transferred OUT\n\n")
	for i, p := range topOut {
		fmt.Fprintf(&b, "%d. %s — %s out (%s net)\n",
			i+1, p.Name, FormatCount(p.TransfersOut), SignedCount(p.NetTransfers()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// PipelineErrorMessage frames a run failure for delivery to the channel
func PipelineErrorMessage(title string, err error) string {
	return fmt.Sprintf("⚠️ %s\n\n%v", title, err)
}

// WelcomeMessage greets a user who sends /start
func WelcomeMessage() string {
	return "Hello! I'm your FPL Price Bot.\n" +
		"Use /pricechanges to see today's FPL price updates,\n" +
		"/predictions for tonight's likely movers,\n" +
		"or /trends for the gameweek's transfer leaderboards."
}
