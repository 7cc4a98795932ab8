package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/jparse/internal/langver"
)

// LoadKDL attempts to load .jparse.kdl from projectRoot. A missing file
// is not an error: it returns Default() unchanged so callers always
// have a usable Config.
func LoadKDL(projectRoot string) (Config, error) {
	kdlPath := filepath.Join(projectRoot, ".jparse.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return Default(), nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read .jparse.kdl: %w", err)
	}

	return parseKDL(string(content))
}

func parseKDL(content string) (Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse .jparse.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if s, ok := firstStringArg(n); ok {
				if v, ok := parseVersionString(s); ok {
					cfg.Version = v
				}
			}
		case "max-input-bytes":
			if v, ok := firstIntArg(n); ok {
				cfg.MaxInputBytes = v
			}
		case "arena-capacity-factor":
			if v, ok := firstFloatArg(n); ok {
				cfg.ArenaCapacityFactor = v
			}
		case "recursion-limit":
			if v, ok := firstIntArg(n); ok {
				cfg.RecursionLimit = v
			}
		case "metrics":
			if b, ok := firstBoolArg(n); ok {
				cfg.MetricsEnabled = b
			}
		case "workers":
			if v, ok := firstIntArg(n); ok {
				cfg.Workers = v
			}
		case "include":
			cfg.Include = collectStringArgs(n)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

func parseVersionString(s string) (langver.Version, bool) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "V")
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return langver.Unknown, false
	}
	v := langver.Version(n)
	if !v.Valid() {
		return langver.Unknown, false
	}
	return v, true
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs reads a glob list either inline (include "*.java"
// "*.kt") or as a block (include { "*.java"; "*.kt" }), matching the
// teacher's two accepted include/exclude KDL shapes.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
