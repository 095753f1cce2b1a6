package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", errors.New("no textarea scripted")
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func execute(t *testing.T, driver tui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := &cli{out: &out, errOut: &errOut, driver: driver}
	cmd := c.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, nil, "validate", testsupport.FixturePath(testsupport.WorkersCompensation))
	require.NoError(t, err)

	assert.Contains(t, out, "app (workers-compensation): 4 steps, 14 fields")
	assert.Contains(t, out, "- text paid-vacation-details (when paid-vacation = true)")
	assert.Contains(t, out, "- radio pay *")
	assert.Contains(t, out, "Schema is valid.")
}

func TestValidateCommand_Errors(t *testing.T) {
	_, _, err := execute(t, nil, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema path is required")

	broken := writeFile(t, "broken.yaml", "id: x\ncategory: pet-insurance\ntitle: X\nsteps: []\n")
	_, _, err = execute(t, nil, "validate", "--schema", broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, _, err = execute(t, nil, "--log-level", "loud", "validate", broken)
	require.Error(t, err)
}

func TestContractCommand(t *testing.T) {
	out, _, err := execute(t, nil, "contract", "-s", testsupport.FixturePath(testsupport.CyberInsurance))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	properties, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "properties missing: %v", doc)
	hosting, ok := properties["hosting"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"cloud", "on-prem"}, hosting["enum"])
	assert.Contains(t, doc["required"], "email")
}

func TestRunCommand_WritesSubmissionAndMetrics(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"sec@example.com", "5551234567", "0"},
		confirms: []bool{false},
		selects:  []int{0, 0, 0},
	}
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	out, _, err := execute(t, driver,
		"run", testsupport.FixturePath(testsupport.CyberInsurance),
		"--format", "pretty",
		"--metrics-file", metricsFile,
	)
	require.NoError(t, err)
	assert.Equal(t, "email=sec@example.com\nhosting=cloud\nmfa=false\nphone=5551234567\nrecords=0\n", out)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `formwizard_submissions_total{category="cyber-insurance"} 1`)
	assert.Contains(t, string(metrics), `formwizard_step_transitions_total{application="cyber",direction="forward",step="exposure"} 1`)
}

func TestRunCommand_WritesOutputFile(t *testing.T) {
	driver := &scriptedDriver{
		inputs:   []string{"sec@example.com", "5551234567", "12"},
		confirms: []bool{true},
		selects:  []int{0, 0, 0},
	}
	output := filepath.Join(t.TempDir(), "submission.json")

	out, _, err := execute(t, driver, "run", "-s", testsupport.FixturePath(testsupport.CyberInsurance), "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var values map[string]any
	require.NoError(t, gojson.Unmarshal(data, &values))
	assert.Equal(t, map[string]any{
		"email":   "sec@example.com",
		"phone":   "5551234567",
		"records": "12",
		"mfa":     true,
		"hosting": "cloud",
	}, values)
}

type failingCloseFile struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloseFile) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestSubmitToFile_ReportsCloseError(t *testing.T) {
	file := &failingCloseFile{}
	c := &cli{logger: logging.NewNop()}

	err := c.submitToFile(context.Background(), file, submission.FormatJSON, wizard.Submission{
		ApplicationID: "cyber",
		Values:        map[string]any{"email": "sec@example.com"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close output: disk full")
	assert.True(t, file.closed)
	assert.Contains(t, file.String(), "sec@example.com")
}

func TestRunCommand_RejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, &scriptedDriver{}, "run", testsupport.FixturePath(testsupport.CyberInsurance), "--format", "xml")
	require.Error(t, err)
}

func TestRenderCommand_HTML(t *testing.T) {
	values := writeFile(t, "values.json", `{"email": "sec@example.com", "phone": "5551234567"}`)

	out, _, err := execute(t, nil,
		"render", testsupport.FixturePath(testsupport.CyberInsurance),
		"--step", "2",
		"--values", values,
		"--action", "/apply",
		"--theme", "acme",
		"--css-var=--fw-accent=#0a84ff",
	)
	require.NoError(t, err)

	assert.Contains(t, out, `data-step="exposure"`)
	assert.Contains(t, out, `action="/apply"`)
	assert.Contains(t, out, `data-theme="acme"`)
	assert.Contains(t, out, `--fw-accent: #0a84ff;`)
	assert.Contains(t, out, `<input type="hidden" name="_step" value="1">`)
	assert.NotContains(t, out, `name="datacenter"`)
}

func TestRenderCommand_CustomTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "step.tmpl"),
		[]byte(`<form data-custom="{{ app.id }}" action="{{ action }}">{{ step.title }}</form>`),
		0o644,
	))

	out, _, err := execute(t, nil,
		"render", testsupport.FixturePath(testsupport.CyberInsurance),
		"--templates", dir,
		"--action", "/apply",
	)
	require.NoError(t, err)
	assert.Equal(t, `<form data-custom="cyber" action="/apply">Security contact</form>`, out)

	_, _, err = execute(t, nil,
		"render", testsupport.FixturePath(testsupport.CyberInsurance),
		"--templates", filepath.Join(dir, "missing"),
	)
	require.Error(t, err)
}

func TestRenderCommand_StopsAtBlockedStep(t *testing.T) {
	out, _, err := execute(t, nil,
		"render", testsupport.FixturePath(testsupport.CyberInsurance),
		"--step", "2",
	)
	require.NoError(t, err)

	assert.Contains(t, out, `data-step="contact"`)
	assert.Contains(t, out, "This field is required")
}

func TestRenderCommand_TextWithBackendErrors(t *testing.T) {
	payload := writeFile(t, "errors.yaml", "/values/email:\n  - Already registered\n_form:\n  - Try again later\n")

	out, _, err := execute(t, nil,
		"render", testsupport.FixturePath(testsupport.CyberInsurance),
		"--renderer", "TEXT",
		"--errors", payload,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Step 1 of 2: Security contact")
	assert.Contains(t, out, "! Try again later")
	assert.Contains(t, out, "    ! Already registered")
}

func TestRenderCommand_Errors(t *testing.T) {
	fixture := testsupport.FixturePath(testsupport.CyberInsurance)

	_, _, err := execute(t, nil, "render", fixture, "--step", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, _, err = execute(t, nil, "render", fixture, "--renderer", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "html")

	values := writeFile(t, "values.json", `{"shoe-size": "42"}`)
	_, _, err = execute(t, nil, "render", fixture, "--values", values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shoe-size")
}
