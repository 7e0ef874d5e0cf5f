package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTemplatesList(t *testing.T) {
	out, _, err := run(t, "", "templates", "list", "--type", "call-script")
	require.NoError(t, err)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "direct-engaging-call")
	assert.NotContains(t, out, "problem-solution-appointment")
}

func TestTemplatesRender(t *testing.T) {
	out, errOut, err := run(t, "", "templates", "render", "problem-solution-appointment",
		"--set", "business_name=Joe's Plumbing",
		"--set", "business_industry=plumbing",
		"--set", "decision_maker=Dana",
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Subject: Streamline Your plumbing Operations"))
	assert.Contains(t, out, "Hi Dana,")
	assert.Contains(t, errOut, "missing required values: city")
}

func TestTemplatesRenderErrors(t *testing.T) {
	_, _, err := run(t, "", "templates", "render", "problem-solution-appointment", "--set", "nonsense")
	assert.ErrorContains(t, err, "want name=value")

	_, _, err = run(t, "", "templates", "render", "no-such-template")
	assert.Error(t, err)
}

func TestExportCSVToStdout(t *testing.T) {
	in := `{"leads":[{"name":"Joe's Plumbing","industry":"Plumbing","readiness_score":45}]}`
	out, _, err := run(t, in, "export", "--format", "csv", "--out", "-")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"Joe's Plumbing"`)
	assert.Contains(t, lines[1], `"45"`)
}

func TestExportPDFToFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")

	_, errOut, err := run(t, `[{"name":"A"},{"name":"B"}]`, "export", "--format", "pdf", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, errOut, "wrote 2 leads")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, `[]`, "export", "--format", "xlsx", "--out", "-")
	assert.Error(t, err)
}

func TestParseSets(t *testing.T) {
	values, err := parseSets([]string{"a=1", " b =x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, values)
}
