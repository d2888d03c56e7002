// internal/cmd/index.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"arena/internal/knowledge"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge base index",
	Long: `Load every .txt, .md and .pdf file under the knowledge directory, split
it into chunks, embed them and persist the index. An existing index built
with the same embedding model is reused unless --rebuild is given.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("rebuild", false, "discard any existing index")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := e.cfg.Retrieval.IndexOptions()
	opts.ForceRebuild, _ = cmd.Flags().GetBool("rebuild")

	r, err := knowledge.Index(cmd.Context(), opts, e.embedder(), e.logger)
	if err != nil {
		return fmt.Errorf("failed to index knowledge base: %w", err)
	}
	if r == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No documents found in %s\n", opts.KBDirectory)
		return nil
	}
	if kr, ok := r.(*knowledge.Retriever); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks into %s\n", kr.Len(), opts.StorePath)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Index ready in %s\n", opts.StorePath)
	return nil
}
