// cmd/tools/threshold-report/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/common/database"
	"riskrec-engine/internal/engine/threshold"
	"riskrec-engine/internal/providers/events"
)

func main() {
	experimentID := flag.String("experiment", "", "Experiment ID to evaluate (empty evaluates all configured experiments)")
	windowDays := flag.Int("window", 0, "Look-back window in days (0 uses the configured follow-up window)")
	asJSON := flag.Bool("json", false, "Emit recommendations as JSON instead of a table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres connection failed: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	store := events.NewOutcomeStore(pg.DB)
	engineCfg := cfg.Engine

	experiments := engineCfg.Experiments
	if *experimentID != "" {
		exp, ok := engineCfg.ExperimentByID(*experimentID)
		if !ok {
			fmt.Fprintf(os.Stderr, "experiment %q is not configured\n", *experimentID)
			os.Exit(1)
		}
		experiments = []config.ExperimentConfig{exp}
	}

	days := *windowDays
	if days <= 0 {
		days = engineCfg.Evaluator.FollowUpWindowDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var recommendations []*threshold.Recommendation
	for _, exp := range experiments {
		outcomes, err := store.ListByExperiment(ctx, exp.ID, since)
		if err != nil {
			fmt.Fprintf(os.Stderr, "outcome query failed for %s: %v\n", exp.ID, err)
			os.Exit(1)
		}
		recommendations = append(recommendations, threshold.Evaluate(outcomes, exp, engineCfg.Evaluator))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recommendations); err != nil {
			fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXPERIMENT\tSTATUS\tVARIANT\tTHRESHOLD\tSAMPLES\tREASON")
	for _, rec := range recommendations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%d\t%s\n",
			rec.ExperimentID, rec.Status, rec.RecommendedVariantID,
			rec.RecommendedThreshold, rec.SampleSize, rec.Reason)
	}
	w.Flush()
}
