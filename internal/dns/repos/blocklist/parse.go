package blocklist

import (
	"bufio"
	"io"
	"net"
	"strings"

	"github.com/haukened/dnsrelay/internal/dns/common/utils"
)

type ruleKind uint8

const (
	ruleExact ruleKind = iota
	ruleSuffix
)

type rule struct {
	name string
	kind ruleKind
}

// parseRules reads a blocklist from r. Both plain domain lists and
// /etc/hosts-style files are accepted, even mixed in one file:
//
//	ads.example.com          exact rule
//	*.tracker.example        suffix rule (apex inclusive)
//	.tracker.example         same
//	0.0.0.0 ads.example.com  hosts entry, IP ignored
//	# comment                whole-line and inline comments
//
// Invalid tokens are skipped, duplicates keep their first occurrence.
func parseRules(r io.Reader) ([]rule, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]struct{})
	var out []rule

	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// hosts-style: drop the leading IP field and take the hostnames
		if len(fields) > 1 && net.ParseIP(fields[0]) != nil {
			fields = fields[1:]
		}

		for _, raw := range fields {
			kind := ruleExact
			switch {
			case strings.HasPrefix(raw, "*."):
				kind = ruleSuffix
				raw = raw[2:]
			case strings.HasPrefix(raw, "."):
				kind = ruleSuffix
				raw = raw[1:]
			}

			name := utils.CanonicalDNSName(raw)
			if !validRuleName(name) {
				continue
			}

			key := name
			if kind == ruleSuffix {
				key = "." + name
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, rule{name: name, kind: kind})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// validRuleName rejects tokens that cannot be domain names: empties,
// leftover wildcards, bare IPs, and label length violations.
func validRuleName(name string) bool {
	if name == "" || strings.Contains(name, "*") || net.ParseIP(name) != nil {
		return false
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
	}
	return true
}
