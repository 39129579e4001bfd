package latex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// ErrCompile matches every *CompileError
var ErrCompile = errors.New("latex compile failed")

// CompileError describes a failed pass. No PDF is ever returned alongside it.
type CompileError struct {
	Pass     int
	ExitCode int
	TimedOut bool
	Log      string
}

func (e *CompileError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("latex compile pass %d timed out", e.Pass)
	case e.Pass == 0:
		return fmt.Sprintf("remote latex renderer failed (status %d)", e.ExitCode)
	default:
		return fmt.Sprintf("latex compile pass %d exited with code %d", e.Pass, e.ExitCode)
	}
}

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

const (
	sourceName = "resume.tex"
	pdfName    = "resume.pdf"
	maxLogSize = 32 * 1024
)

// Compiler turns LaTeX source into PDF bytes, either with a local TeX
// toolchain or through a remote renderer service.
type Compiler struct {
	Binary      string
	Passes      int
	PassTimeout time.Duration
	WorkDir     string
	RendererURL string

	httpClient *http.Client
	logger     logging.Logger
}

func NewCompiler(cfg *config.Config) *Compiler {
	return &Compiler{
		Binary:      cfg.Latex.Binary,
		Passes:      cfg.Latex.Passes,
		PassTimeout: cfg.Latex.PassTimeout,
		WorkDir:     cfg.Latex.WorkDir,
		RendererURL: strings.TrimSpace(cfg.Latex.RendererURL),
		httpClient:  &http.Client{},
		logger:      logging.GetGlobalLogger().WithField("component", "latex"),
	}
}

// Compile returns the produced PDF bytes or a *CompileError carrying the
// toolchain log.
func (c *Compiler) Compile(ctx context.Context, source string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("empty LaTeX source")
	}
	if c.RendererURL != "" {
		return c.compileRemote(ctx, source)
	}
	return c.compileLocal(ctx, source)
}

func (c *Compiler) compileLocal(ctx context.Context, source string) ([]byte, error) {
	workDir, err := os.MkdirTemp(c.WorkDir, "latex-build-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	if err := os.WriteFile(filepath.Join(workDir, sourceName), []byte(source), 0o644); err != nil {
		return nil, fmt.Errorf("write tex file: %w", err)
	}

	passes := c.Passes
	if passes < 1 {
		passes = 1
	}

	var log string
	for pass := 1; pass <= passes; pass++ {
		start := time.Now()
		log, err = c.runPass(ctx, workDir, pass)
		if err != nil {
			c.log().Warn("LaTeX compile pass failed", map[string]interface{}{
				"pass":        pass,
				"duration_ms": time.Since(start).Milliseconds(),
				"error":       err.Error(),
			})
			return nil, err
		}
		c.log().Debug("LaTeX compile pass completed", map[string]interface{}{
			"pass":        pass,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}

	pdf, err := os.ReadFile(filepath.Join(workDir, pdfName))
	if err != nil || len(pdf) == 0 {
		return nil, &CompileError{Pass: passes, Log: log + "\nno PDF produced"}
	}
	return pdf, nil
}

func (c *Compiler) runPass(ctx context.Context, workDir string, pass int) (string, error) {
	timeout := c.PassTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	passCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := c.Binary
	if binary == "" {
		binary = "pdflatex"
	}

	cmd := exec.CommandContext(passCtx, binary,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-no-shell-escape",
		"-output-directory", workDir,
		sourceName,
	)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "TEXMFVAR="+filepath.Join(workDir, "texmf-var"))
	cmd.WaitDelay = 2 * time.Second
	killProcessGroup(cmd)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	log := tail(out.String(), maxLogSize)
	if runErr == nil {
		return log, nil
	}

	cerr := &CompileError{Pass: pass, ExitCode: -1, Log: log}
	if errors.Is(passCtx.Err(), context.DeadlineExceeded) {
		cerr.TimedOut = true
		return log, cerr
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
		return log, cerr
	}
	if ctx.Err() != nil {
		return log, ctx.Err()
	}
	// binary missing or not executable
	cerr.Log = strings.TrimSpace(log + "\n" + runErr.Error())
	return log, cerr
}

func (c *Compiler) compileRemote(ctx context.Context, source string) ([]byte, error) {
	timeout := c.PassTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	passes := c.Passes
	if passes < 1 {
		passes = 1
	}
	ctx, cancel := context.WithTimeout(ctx, timeout*time.Duration(passes))
	defer cancel()

	body, _ := json.Marshal(map[string]string{"latex": source})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.RendererURL, "/")+"/compile", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &CompileError{TimedOut: true, Log: err.Error()}
		}
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxLogSize))
		return nil, &CompileError{ExitCode: resp.StatusCode, Log: string(b)}
	}
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read renderer response: %w", err)
	}
	if len(pdf) == 0 {
		return nil, &CompileError{ExitCode: resp.StatusCode, Log: "renderer returned empty pdf"}
	}
	return pdf, nil
}

func (c *Compiler) log() logging.Logger {
	if c.logger == nil {
		c.logger = logging.GetGlobalLogger().WithField("component", "latex")
	}
	return c.logger
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
