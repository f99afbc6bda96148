package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/chat"
	"github.com/gaurav-prasanna/interviewdigest/core/llm"
	"github.com/gaurav-prasanna/interviewdigest/core/output"
	"github.com/gaurav-prasanna/interviewdigest/core/vectorstore"
)

const sampleDescription = `## Interview Preparation Journey
Prepared for three months on arrays and graphs.

## Interview Rounds

### Round 1
Mode: Online
1. Two Sum
Easy

🔗 Problem Links: https://leetcode.com/problems/two-sum

### Round 2
Mode: Video Call
Discussed a graph problem.

🔗 Problem Links: null`

// writeSampleBatch writes a one-item batch outside the output directory.
func writeSampleBatch(t *testing.T) string {
	t.Helper()
	w, err := output.New(t.TempDir())
	require.NoError(t, err)
	path, err := w.WriteBatch("Amazon", "SDE - 1", []core.RawInterview{{
		Company:     "Amazon",
		Role:        "SDE - 1",
		URL:         "https://example.org/1",
		Description: sampleDescription,
	}})
	require.NoError(t, err)
	return path
}

// execute runs the root command in an empty working directory.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{"OPENAI_API_KEY", "GOOGLE_API_KEY", "INTERVIEWDIGEST_LLM_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() {
		flagFormat, flagXLSX, flagOffline = "txt", false, false
		flagCompany, flagRole, flagOutputDir, flagConfig, flagLogLevel = "", "", "", "", ""
	})
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestDigestCommand(t *testing.T) {
	batch := writeSampleBatch(t)
	out := t.TempDir()

	require.NoError(t, execute(t, "digest", batch, "--format", "json", "--output_dir", out, "--log_level", "error"))

	data, err := os.ReadFile(filepath.Join(out, "amazon_sde_1.json"))
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Amazon", records[0]["company"])
	assert.Len(t, records[0]["interview_rounds"], 2)
}

func TestDigestCommandText(t *testing.T) {
	batch := writeSampleBatch(t)
	out := t.TempDir()

	require.NoError(t, execute(t, "digest", batch, "--output_dir", out, "--company", "Acme", "--log_level", "error"))

	data, err := os.ReadFile(filepath.Join(out, "acme_sde_1.txt"))
	require.NoError(t, err)
	// The flag names the file; records keep the company of their source row.
	assert.True(t, strings.HasPrefix(string(data), "Company: Amazon | Role: SDE - 1\n"))
}

func TestDigestCommandBadFormat(t *testing.T) {
	err := execute(t, "digest", writeSampleBatch(t), "--format", "docx", "--log_level", "error")
	assert.Error(t, err)
}

func TestReportCommandOffline(t *testing.T) {
	batch := writeSampleBatch(t)
	out := t.TempDir()

	require.NoError(t, execute(t, "report", batch, "--offline", "--xlsx", "--output_dir", out, "--log_level", "error"))

	pdf, err := os.ReadFile(filepath.Join(out, "amazon_sde_1.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.FileExists(t, filepath.Join(out, "amazon_sde_1.xlsx"))
}

func TestInvalidLogLevel(t *testing.T) {
	err := execute(t, "digest", writeSampleBatch(t), "--log_level", "loud")
	assert.Error(t, err)
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, string) ([]float32, error) { return []float32{1}, nil }

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, []float32, int) ([]vectorstore.Hit, error) {
	return nil, nil
}

type echoChatter struct{}

func (echoChatter) Chat(_ context.Context, _ string, history []llm.Message, input string) (string, error) {
	return "answer " + string(rune('0'+len(history)/2)), nil
}

func TestChatLoop(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetContext(context.Background())
	assistant := chat.New(stubEmbedder{}, stubSearcher{}, echoChatter{}, "c", 0)

	err := chatLoop(c, assistant, strings.NewReader("first?\n\nsecond?\nbye\nnever asked\n"))
	require.NoError(t, err)
	assert.Equal(t, "> answer 0\n\n> > answer 1\n\n> Session ended.\n", out.String())
	assert.Len(t, assistant.History(), 4)
}

func TestChatLoopEOF(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetContext(context.Background())

	err := chatLoop(c, chat.New(stubEmbedder{}, stubSearcher{}, echoChatter{}, "c", 0), strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "> \n", out.String())
}
