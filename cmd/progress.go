package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/output"
)

// progress shows a spinner with a done/total counter on stderr.
type progress struct {
	s     *spinner.Spinner
	label string
}

func newProgress(label string) *progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + label
	s.Start()
	return &progress{s: s, label: label}
}

// update matches the onProgress callback of crawl.Run.
func (p *progress) update(done, total int) {
	p.s.Lock()
	p.s.Suffix = fmt.Sprintf(" %s %d/%d", p.label, done, total)
	p.s.Unlock()
}

func (p *progress) stop() {
	p.s.Stop()
}

// newWriter opens the configured output directory.
func newWriter() (*output.Writer, error) {
	w, err := output.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	return w, nil
}

// loadBatch reads a batch file and returns it with the company and role used
// to name outputs: the flags when set, otherwise the first item's.
func loadBatch(path, company, role string) ([]core.RawInterview, string, string, error) {
	items, err := output.ReadBatch(path)
	if err != nil {
		return nil, "", "", err
	}
	if len(items) > 0 {
		if strings.TrimSpace(company) == "" {
			company = items[0].Company
		}
		if strings.TrimSpace(role) == "" {
			role = items[0].Role
		}
	}
	logger.Info("batch loaded", "file", path, "interviews", len(items))
	return items, company, role, nil
}
