package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"radflag/internal/extract"
)

var extractFile string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Pull the recommended exam phrase out of a referral narrative",
	Long: `Extract reduces a referral narrative to its clinical phrase and splits
it into exam type, body part and contrast details — the same
preparation the process command applies with --referral.

Example:
  radflag extract "Recommendation: CT abdomen with IV contrast. Follow up."
  radflag extract --file referral.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFile, "file", "", "read the narrative from a file instead of the argument")
}

func runExtract(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case extractFile != "":
		data, err := os.ReadFile(extractFile)
		if err != nil {
			return fmt.Errorf("read narrative: %w", err)
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	default:
		return fmt.Errorf("provide narrative text or --file")
	}

	cleaned := extract.CleanRecommendation(text)
	ref := extract.ParseReferral(cleaned)

	fmt.Printf("recommendation: %s\n", cleaned)
	fmt.Printf("exam:           %s\n", ref.Exam)
	fmt.Printf("body part:      %s\n", ref.BodyPart)
	fmt.Printf("contrast:       %s\n", ref.Contrast)
	return nil
}
