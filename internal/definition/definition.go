// Package definition loads report definitions from YAML.
//
// A definition has two top-level keys. report holds the session options
// and blocks is an ordered list of single-key mappings, the key naming the
// block kind:
//
//	report:
//	  name: Weekly scan
//	  highlight_code: true
//	blocks:
//	  - section:
//	      title: Summary
//	      content: All hosts patched.
//	  - table:
//	      header: [host, port]
//	      rows:
//	        - [10.0.0.1, 22]
//
// Every block is decoded and shape checked while loading, so a malformed
// definition fails before a session exists.
package definition

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/logger"
)

// Document is a decoded report definition
type Document struct {
	Report report.Options
	Blocks []Block
}

// Block is one decoded entry of the blocks list. Value holds the block
// struct for Kind, or a string for custom_html.
type Block struct {
	Kind  report.Kind
	Line  int
	Value any
}

// rawDocument keeps the undecoded nodes of a definition
type rawDocument struct {
	Report yaml.Node `yaml:"report"`
	Blocks yaml.Node `yaml:"blocks"`
}

// Loader reads definitions on top of a set of default options
type Loader struct {
	defaults report.Options
}

// NewLoader creates a loader. Options the definition leaves unset keep
// their value from defaults.
func NewLoader(defaults report.Options) *Loader {
	return &Loader{defaults: defaults}
}

// Load reads and decodes a definition file
func (l *Loader) Load(path string) (*Document, error) {
	logger.Debug("Loading report definition",
		zap.String("path", path),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeConfigNotFound,
				"report definition not found: "+path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid,
			"failed to read report definition", err)
	}

	doc, err := l.Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded report definition",
		zap.String("path", path),
		zap.String("name", doc.Report.ReportName),
		zap.Int("blocks", len(doc.Blocks)),
	)
	return doc, nil
}

// Parse decodes a definition from YAML bytes
func (l *Loader) Parse(data []byte) (*Document, error) {
	expanded := expandEnvVars(string(data))

	var raw rawDocument
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse,
			"failed to parse report definition YAML", err)
	}

	doc := &Document{Report: l.defaults}
	if raw.Report.Kind != 0 {
		if raw.Report.Kind != yaml.MappingNode {
			return nil, errors.ErrShape(fmt.Sprintf("line %d: report must be a mapping of options", raw.Report.Line))
		}
		if err := strictDecode(&raw.Report, &doc.Report); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid report options", err)
		}
	}

	if raw.Blocks.Kind == 0 {
		return doc, nil
	}
	if raw.Blocks.Kind != yaml.SequenceNode {
		return nil, errors.ErrShape(fmt.Sprintf("line %d: blocks must be a list", raw.Blocks.Line))
	}
	for i, n := range raw.Blocks.Content {
		kind, body, err := singleKey(n, "block")
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		value, err := decodeBlock(report.Kind(kind), body)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s, line %d): %w", i+1, kind, n.Line, err)
		}
		doc.Blocks = append(doc.Blocks, Block{Kind: report.Kind(kind), Line: n.Line, Value: value})
	}
	return doc, nil
}

// strictDecode decodes n into out, rejecting keys out does not declare
func strictDecode(n *yaml.Node, out any) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// allowedEnvVarPrefixes limits which environment variables a definition
// can read
var allowedEnvVarPrefixes = []string{
	"REPORTNG_",
	"CI_",
	"GITHUB_",
	"GITLAB_",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func isAllowedEnvVar(varName string) bool {
	for _, prefix := range allowedEnvVarPrefixes {
		if strings.HasPrefix(varName, prefix) {
			return true
		}
	}
	logger.Warn("Environment variable blocked by whitelist",
		zap.String("var_name", varName),
		zap.Strings("allowed_prefixes", allowedEnvVarPrefixes),
	)
	return false
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// values. Variables outside the whitelist expand to their default, or are
// left as written when they have none.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := strings.SplitN(match[2:len(match)-1], ":-", 2)
		varName := parts[0]

		if !isAllowedEnvVar(varName) {
			if len(parts) > 1 {
				return parts[1]
			}
			return match
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	})
}
