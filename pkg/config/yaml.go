package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLIndent is the indentation of every YAML document mdhighlight writes.
const YAMLIndent = 2

// ToYAML serializes the persisted settings. CLI-only fields are omitted.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration below header, which is
// written as YAML comments. Lines already starting with '#' are kept as is.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	header = strings.TrimRight(header, "\n")
	if header == "" {
		return body, nil
	}

	var buf bytes.Buffer
	for line := range strings.SplitSeq(header, "\n") {
		switch {
		case strings.HasPrefix(line, "#"):
			buf.WriteString(line)
		case strings.TrimSpace(line) == "":
			buf.WriteByte('#')
		default:
			buf.WriteString("# ")
			buf.WriteString(line)
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration file. Keys the file leaves out stay at
// their zero value; unknown keys are an error. An empty document yields an
// empty Config.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone returns a copy of c that shares no slices with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	return &clone
}
