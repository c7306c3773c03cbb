package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/book"
	"github.com/ziadkadry99/beyond-scaling/internal/lint"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

var checkCmd = &cobra.Command{
	Use:   "check [article-id...]",
	Short: "Check articles for unknown visualizations and legacy placeholders",
	Long: `Fetches each article and verifies that every placeholder names a
registered visualization. Legacy placeholder forms are reported as warnings.
Exits non-zero when any error is found.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("all", false, "check every file in the content directory, not only the book's articles")
	checkCmd.Flags().Bool("unused", false, "also list registered visualizations no article uses")
	checkCmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	src := newSource(cfg)

	ids := args
	if len(ids) == 0 {
		ids = book.FromConfig(cfg).ContentIDs()
		if all, _ := cmd.Flags().GetBool("all"); all {
			if cfg.ContentOrigin != "" {
				return fmt.Errorf("--all needs a local content directory")
			}
			ids, err = newDirSource(cfg).List()
			if err != nil {
				return err
			}
		}
	}

	reg := viz.Default()
	report, err := lint.Check(cmd.Context(), src, ids, reg)
	if err != nil {
		return err
	}
	logger.WithField("summary", lint.Summary(report)).Debug("Check finished")

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if err := report.WriteText(os.Stdout); err != nil {
		return err
	}

	if unused, _ := cmd.Flags().GetBool("unused"); unused {
		texts := make(map[string]string, len(ids))
		for _, id := range ids {
			if text, err := src.Fetch(cmd.Context(), id); err == nil {
				texts[id] = text
			}
		}
		for _, key := range lint.Unused(texts, reg) {
			fmt.Printf("unused visualization: %s\n", key)
		}
	}

	if report.HasErrors() {
		return fmt.Errorf("content check failed: %d errors", report.Errors())
	}
	return nil
}
