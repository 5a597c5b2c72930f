package blocklist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules_PlainList(t *testing.T) {
	input := strings.Join([]string{
		"ads.example.com",
		"*.tracker.example",
		".metrics.example",
		"",
		"# whole line comment",
		"telemetry.example.com # inline comment",
	}, "\n")

	rules, err := parseRules(strings.NewReader(input))
	require.NoError(t, err)

	want := []rule{
		{name: "ads.example.com", kind: ruleExact},
		{name: "tracker.example", kind: ruleSuffix},
		{name: "metrics.example", kind: ruleSuffix},
		{name: "telemetry.example.com", kind: ruleExact},
	}
	assert.Equal(t, want, rules)
}

func TestParseRules_HostsFormat(t *testing.T) {
	input := strings.Join([]string{
		"127.0.0.1 localhost.localdomain",
		"0.0.0.0 ads.example.com tracker.example.com",
		"::1 v6.example.com",
	}, "\n")

	rules, err := parseRules(strings.NewReader(input))
	require.NoError(t, err)

	want := []rule{
		{name: "localhost.localdomain", kind: ruleExact},
		{name: "ads.example.com", kind: ruleExact},
		{name: "tracker.example.com", kind: ruleExact},
		{name: "v6.example.com", kind: ruleExact},
	}
	assert.Equal(t, want, rules)
}

func TestParseRules_SkipsInvalidTokens(t *testing.T) {
	input := strings.Join([]string{
		"valid.example.com",
		"bad*name.example",
		"..",
		"0.0.0.0", // bare IP line with no hostname
		strings.Repeat("a", 64) + ".example.com",
	}, "\n")

	rules, err := parseRules(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []rule{{name: "valid.example.com", kind: ruleExact}}, rules)
}

func TestParseRules_Deduplicates(t *testing.T) {
	input := strings.Join([]string{
		"ads.example.com",
		"ADS.Example.COM.",
		"*.ads.example.com", // suffix is distinct from exact
		"*.ads.example.com",
	}, "\n")

	rules, err := parseRules(strings.NewReader(input))
	require.NoError(t, err)

	want := []rule{
		{name: "ads.example.com", kind: ruleExact},
		{name: "ads.example.com", kind: ruleSuffix},
	}
	assert.Equal(t, want, rules)
}

func TestParseRules_Empty(t *testing.T) {
	rules, err := parseRules(strings.NewReader("# nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}
