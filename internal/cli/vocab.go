package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"radflag/internal/vocab"
)

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect and validate vocabulary data",
	Long: `Vocabulary data is versioned configuration: per field, an ordered
category list with fixed bit values and an alias table. Bits are
append-only — new categories take the next unused power of two and
existing bits are never renumbered, or previously stored flags become
misinterpretable.`,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadVocabulary()
		if err != nil {
			return err
		}

		fmt.Printf("Vocabulary version %d (fingerprint %.12s)\n\n", v.Version(), v.Fingerprint())
		for _, field := range vocab.Fields() {
			cats := v.Categories(field)
			if len(cats) == 0 {
				continue
			}
			fmt.Printf("%s:\n", field)
			for _, c := range cats {
				fmt.Printf("  %-20s bit %d\n", c.Name, c.Bit)
			}
			fmt.Println()
		}
		return nil
	},
}

var vocabCheckCmd = &cobra.Command{
	Use:   "check <file.yaml>",
	Short: "Validate a vocabulary file without processing anything",
	Long: `Check loads a vocabulary file and runs the full eager validation:
unknown fields, duplicate or non-power-of-two bits, aliases targeting
unregistered categories, and alias strings that normalize to the same
lookup key.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := vocab.Load(args[0])
		if err != nil {
			return err
		}

		total := 0
		for _, field := range vocab.Fields() {
			total += len(v.Categories(field))
		}
		fmt.Printf("✓ %s is valid (version %d, %d categories)\n", args[0], v.Version(), total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabShowCmd)
	vocabCmd.AddCommand(vocabCheckCmd)
}
