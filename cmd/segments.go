package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
	"github.com/ziadkadry99/beyond-scaling/internal/viz"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <article-id>",
	Short: "Show how an article splits into prose and visualization segments",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegments,
}

func init() {
	segmentsCmd.Flags().Bool("json", false, "print segments as JSON")
	rootCmd.AddCommand(segmentsCmd)
}

func runSegments(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	text, err := newSource(cfg).Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	segs := placeholder.Split(text)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(segs)
	}

	reg := viz.Default()
	for i, seg := range segs {
		if seg.IsVisualization() {
			status := ""
			if !reg.Has(seg.TypeKey) {
				status = "  (unknown)"
			}
			fmt.Printf("%3d  visualization  %s [%s]%s\n", i, seg.TypeKey, seg.Syntax, status)
			continue
		}
		fmt.Printf("%3d  prose          %s\n", i, preview(seg.Text, 60))
	}
	prose, visuals := placeholder.Counts(segs)
	fmt.Printf("%d segments: %d prose, %d visualization\n", len(segs), prose, visuals)
	return nil
}

// preview returns the first n runes of s on one line.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
