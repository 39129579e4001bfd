package main

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "job-application-organizer",
	Short: "Tailor resumes to job postings and render them to LaTeX and PDF",
	Long: `job-application-organizer stores a master profile and job postings, generates a
resume tailored to each posting through an OpenAI-compatible endpoint, scores it
against the job description and renders it to LaTeX and PDF.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "configs/config.yaml", "path to the YAML configuration file")
}
