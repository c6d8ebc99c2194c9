package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chartlab/domain/chart"
	"chartlab/internal/errors"
	"chartlab/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSales(t *testing.T) string {
	t.Helper()
	config := testkit.DefaultSalesConfig()
	config.Rows = 40
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, testkit.NewSalesDataGenerator(config).CSV(), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyze(t *testing.T) {
	path := writeSales(t)

	out, err := execute(t, "analyze", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Data Analysis: ")
	assert.Contains(t, out, "orders.csv")
	assert.Contains(t, out, "- **Rows:** 40")
	assert.Contains(t, out, "| units | numeric |")

	out, err = execute(t, "analyze", path, "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")

	out, err = execute(t, "analyze", path, "--json")
	require.NoError(t, err)
	var report struct {
		RowCount int `json:"rowCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 40, report.RowCount)

	_, err = execute(t, "analyze", path, "--json", "--html")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestPrepare_JSONRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	rows := `[{"cat":"A","v":"3"},{"cat":"A","v":"4"},{"cat":"B","v":"x"}]`
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o600))

	out, err := execute(t, "prepare", path, "--type", "treemap", "--x", "cat", "--y", "v")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "A"`)
	assert.Contains(t, out, `"size": 7`)
	assert.NotContains(t, out, `"name": "B"`)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o600))
	_, err = execute(t, "analyze", bad)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAnalyze_UnsupportedFile(t *testing.T) {
	_, err := execute(t, "analyze", "notes.txt")
	assert.Equal(t, errors.CodeUnsupportedFile, errors.GetCode(err))
}

func TestPrepare(t *testing.T) {
	path := writeSales(t)

	out, err := execute(t, "prepare", path, "--type", "PIE", "--x", "region")
	require.NoError(t, err)

	var prepared struct {
		Kind    chart.Kind `json:"kind"`
		Caption string     `json:"caption"`
		Spec    chart.Spec `json:"spec"`
		Records []struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &prepared))
	assert.Equal(t, chart.KindPie, prepared.Kind)
	assert.Equal(t, "Category: region", prepared.Caption)
	assert.Equal(t, "Pie Chart", prepared.Spec.Title)

	total := 0
	for _, r := range prepared.Records {
		total += r.Value
	}
	assert.Equal(t, 40, total)
}

func TestPrepare_FlagErrors(t *testing.T) {
	path := writeSales(t)

	_, err := execute(t, "prepare", path, "--type", "radar", "--x", "region", "--y", "units")
	assert.Equal(t, errors.CodeUnsupportedChart, errors.GetCode(err))

	_, err = execute(t, "prepare", path, "--type", "bar", "--x", "region")
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, err = execute(t, "prepare", path, "--type", "bar")
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	path := writeSales(t)

	out, err := execute(t, "preview", path, "-n", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "order_id"))
	assert.Contains(t, out, "order_00003")
	assert.NotContains(t, out, "order_00004")
	assert.Contains(t, out, "Showing 3 of 40 rows")
}

func TestMigrateDryRun(t *testing.T) {
	out, err := execute(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "create datasets table")
}
