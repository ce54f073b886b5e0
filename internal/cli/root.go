// Package cli wires the radflag commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radflag/internal/vocab"
)

var (
	cfgFile   string
	vocabFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "radflag",
	Short: "radflag - bitmask flagging for imaging-order free text",
	Long: `radflag converts the free-text fields of medical imaging orders
(exam type, body region, contrast usage) into integer bitmask codes
suitable for downstream evaluation.

Matching is strictly vocabulary-driven: text is normalized, resolved
against a versioned alias table, and every matched canonical category
contributes its fixed bit. Text that matches nothing encodes as 0 —
a best-effort unknown, never an error.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("radflag v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.radflag/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&vocabFile, "vocab", "", "vocabulary YAML file (default: built-in vocabulary)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("vocabulary.path", rootCmd.PersistentFlags().Lookup("vocab"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.radflag")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match RADFLAG_*
	viper.SetEnvPrefix("RADFLAG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadVocabulary resolves the active vocabulary: an explicit file from
// the flag or config, otherwise the built-in data. Configuration
// errors surface here, before any row is touched.
func loadVocabulary() (*vocab.Vocabulary, error) {
	path := viper.GetString("vocabulary.path")
	if path == "" {
		return vocab.Default(), nil
	}
	v, err := vocab.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	return v, nil
}
