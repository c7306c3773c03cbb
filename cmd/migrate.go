package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/placeholder"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [article-id...]",
	Short: "Rewrite legacy placeholders to {visualization:<key>}",
	Long: `Finds HTML-comment, bare-line and div placeholders in the content
directory and rewrites them to the canonical form. Without --write the
command only reports what would change.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("write", false, "rewrite files in place")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if cfg.ContentOrigin != "" {
		return fmt.Errorf("migrate needs a local content directory (content_origin is set)")
	}
	write, _ := cmd.Flags().GetBool("write")

	src := newDirSource(cfg)
	ids := args
	if len(ids) == 0 {
		if ids, err = src.List(); err != nil {
			return err
		}
	}

	files, total := 0, 0
	for _, id := range ids {
		text, err := src.Fetch(cmd.Context(), id)
		if err != nil {
			return err
		}
		out, n := placeholder.Rewrite(text)
		if n == 0 {
			continue
		}
		files++
		total += n
		fmt.Printf("%s.md: %d placeholder(s)\n", id, n)
		if !write {
			continue
		}
		info, err := os.Stat(src.Path(id))
		if err != nil {
			return err
		}
		if err := os.WriteFile(src.Path(id), []byte(out), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", src.Path(id), err)
		}
		logger.WithField("article", id).Debug("Rewrote placeholders")
	}

	switch {
	case total == 0:
		fmt.Println("No legacy placeholders found.")
	case write:
		fmt.Printf("Rewrote %d placeholder(s) in %d file(s).\n", total, files)
	default:
		fmt.Printf("%d placeholder(s) in %d file(s) would be rewritten. Run with --write to apply.\n", total, files)
	}
	return nil
}
