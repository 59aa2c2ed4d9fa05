package netplanlint_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	netplanlint "github.com/reoring/netplanlint"
	"github.com/reoring/netplanlint/i18n"
)

func TestValidator_ValidateAll(t *testing.T) {
	v := netplanlint.New(mustBuild(t))

	assert.Empty(t, v.ValidateAll("network:\n  version: 2\n"))

	iss := v.ValidateAll(eth("dhcp4: 1\nmtu: -1"))
	require.Len(t, iss, 2)
	paths := []string{iss[0].Path, iss[1].Path}
	assert.ElementsMatch(t, []string{"/network/ethernets/eth0/dhcp4", "/network/ethernets/eth0/mtu"}, paths)
	assert.Contains(t, iss.Error(), "Unexpected value")

	iss = v.ValidateAll("[\n")
	require.Len(t, iss, 1)
	assert.Equal(t, netplanlint.KindParse, iss[0].Kind)
}

func TestValidator_FirstIssueIsFirstOfAll(t *testing.T) {
	v := netplanlint.New(mustBuild(t))

	// single violation: both agree exactly
	doc := eth("dhcp4: 1")
	err := v.Validate(doc)
	require.Error(t, err)
	all := v.ValidateAll(doc)
	require.Len(t, all, 1)
	assert.Equal(t, all[0].Error(), err.Error())

	// several violations: engine order may differ between runs
	doc = eth("dhcp4: 1\nmtu: -1\nbogus: x")
	for range 10 {
		err = v.Validate(doc)
		require.Error(t, err)
		var msgs []string
		for _, is := range v.ValidateAll(doc) {
			msgs = append(msgs, is.Error())
		}
		assert.Contains(t, msgs, err.Error())
	}
}

func TestValidator_Translator(t *testing.T) {
	v := netplanlint.New(mustBuild(t), netplanlint.WithTranslator(i18n.Lookup("ja")))
	err := v.Validate("network: [\n")
	require.Error(t, err)
	assert.Equal(t, i18n.Lookup("ja").Message(i18n.KeyParseError, nil), err.Error())

	is, _ := netplanlint.AsIssue(err)
	assert.Equal(t, "parser failed to parse the file", is.Message(i18n.Default()))
}

func TestValidator_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	v := netplanlint.New(mustBuild(t), netplanlint.WithMetrics(netplanlint.NewMetrics(reg)))

	_ = v.Validate("network:\n  version: 2\n")
	_ = v.Validate(eth("weird: 1"))
	_ = v.Validate(eth("weird: 1"))
	_ = v.Validate("[\n")

	expected := `
# HELP netplanlint_validations_total Total number of validated documents by outcome
# TYPE netplanlint_validations_total counter
netplanlint_validations_total{result="parse_error"} 1
netplanlint_validations_total{result="unexpected_keyword"} 2
netplanlint_validations_total{result="valid"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "netplanlint_validations_total"))
}

func TestValidator_Logger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	v := netplanlint.New(mustBuild(t), netplanlint.WithLogger(zap.New(core)))

	_ = v.Validate("network:\n  version: 2\n")
	_ = v.Validate(eth("weird: 1"))

	assert.Equal(t, 1, logs.FilterMessage("document accepted").Len())
	rejected := logs.FilterMessage("document rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, "unexpected_keyword", rejected[0].ContextMap()["kind"])
}

func TestValidator_ConcurrentUse(t *testing.T) {
	v := netplanlint.New(mustBuild(t))
	docs := map[string]bool{
		"network:\n  version: 2\n": true,
		eth("dhcp4: true"):         true,
		eth("dhcp4: 1"):            false,
		eth("weird: 1"):            false,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for doc, valid := range docs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := v.Validate(doc)
				assert.Equal(t, valid, err == nil, doc)
			}()
		}
	}
	wg.Wait()
}

func TestValidator_ValidateFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	paths := []string{
		write("ok.yaml", "network:\n  version: 2\n"),
		write("bad.yaml", eth("weird: 1")),
		filepath.Join(dir, "missing.yaml"),
		write("broken.yaml", "network: [\n"),
	}

	v := netplanlint.New(mustBuild(t))
	results, err := v.ValidateFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.NoError(t, results[0].Err)
	assert.EqualError(t, results[1].Err, "Unexpected keyword /network/ethernets/eth0/weird")
	assert.Error(t, results[2].ReadErr)
	assert.NoError(t, results[2].Err)
	assert.EqualError(t, results[3].Err, "parser failed to parse the file")
}

func TestValidator_ValidateFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := netplanlint.New(mustBuild(t))
	results, err := v.ValidateFiles(ctx, []string{"a.yaml", "b.yaml"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	assert.Equal(t, "a.yaml", results[0].Path)
	assert.Equal(t, "b.yaml", results[1].Path)
}
