package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	renderIn    string
	renderOut   string
	renderPDF   string
	renderTheme string
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON document to LaTeX and optionally PDF",
	Long: `Render validates a resume document, writes its LaTeX source and, with --pdf,
compiles it using the configured toolchain or remote renderer.

Example:
  job-application-organizer render --in resume.json --out resume.tex --pdf resume.pdf --theme COMPACT`,
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderIn, "in", "", "resume JSON document (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "LaTeX output path (stdout when empty)")
	renderCmd.Flags().StringVar(&renderPDF, "pdf", "", "PDF output path")
	renderCmd.Flags().StringVar(&renderTheme, "theme", latex.DefaultTheme, "LaTeX theme")
	_ = renderCmd.MarkFlagRequired("in")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.CloseLogging()

	data, err := os.ReadFile(renderIn)
	if err != nil {
		return errors.Wrapf(err, "failed reading %s", renderIn)
	}

	resume, err := contract.ValidateResume(contract.Sanitize(string(data)))
	if err != nil {
		return errors.Wrap(err, "invalid resume document")
	}

	src, err := latex.NewEngine().Render(*resume, renderTheme)
	if err != nil {
		return err
	}

	if renderOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), src)
	} else if err := os.WriteFile(renderOut, []byte(src), 0o644); err != nil {
		return errors.Wrapf(err, "failed writing %s", renderOut)
	}

	if renderPDF == "" {
		return nil
	}

	pdf, err := latex.NewCompiler(cfg).Compile(context.Background(), src)
	if err != nil {
		var compileErr *latex.CompileError
		if errors.As(err, &compileErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), compileErr.Log)
		}
		return err
	}
	if err := os.WriteFile(renderPDF, pdf, 0o644); err != nil {
		return errors.Wrapf(err, "failed writing %s", renderPDF)
	}

	logging.GetGlobalLogger().Info("Resume rendered", map[string]interface{}{
		"tex":        renderOut,
		"pdf":        renderPDF,
		"size_bytes": len(pdf),
	})
	return nil
}
