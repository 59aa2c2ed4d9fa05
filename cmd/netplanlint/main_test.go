package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestExecute_NoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := execute(context.Background(), nil, &out, &errOut)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Try passing a bunch of netplan yamls as parameters\n", out.String())
}

func TestExecute_ValidAndInvalid(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "network:\n  version: 2\n  ethernets:\n    eth0:\n      dhcp4: true\n")
	bad := writeFile(t, dir, "bad.yaml", "network:\n  ethernets:\n    eth0:\n      dhcp4: 1\n")
	metrics := filepath.Join(dir, "metrics.prom")

	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{"-j", "1", "--metrics-file", metrics, good, bad}, &out, &errOut)
	assert.Equal(t, 1, code)

	want := strings.Join([]string{
		"Parsing " + good,
		"File " + good + " is valid",
		"Parsing " + bad,
		"Validation failed for file " + bad,
		"Error: Unexpected value /network/ethernets/eth0/dhcp4: 1",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `netplanlint_validations_total{result="valid"} 1`)
	assert.Contains(t, string(prom), `netplanlint_validations_total{result="unexpected_value"} 1`)
}

func TestExecute_AllValid(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "network:\n  version: 2\n")

	var out, errOut bytes.Buffer
	assert.Equal(t, 0, execute(context.Background(), []string{good}, &out, &errOut))
}

func TestExecute_Verbose(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "network:\n  ethernets:\n    eth0:\n      weird: 1\n")

	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{"-v", bad}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Error: Unexpected keyword /network/ethernets/eth0/weird")
	assert.Contains(t, out.String(), "at line 4")
}

func TestExecute_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{missing}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Failed to open file "+missing)
}

func TestExecute_UnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{"--nope"}, &out, &errOut)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "netplanlint:")
}
