/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"dirpx.dev/srx/apis"
)

// SupportedAPIVersions is the semver constraint a config file's apiVersion
// must satisfy.
const SupportedAPIVersions = "^1"

var (
	// ErrInvalidConfig is returned when a config file fails to parse or
	// does not match the schema.
	ErrInvalidConfig = errors.New("srx(config): invalid config file")
	// ErrUnsupportedVersion is returned when a config file's apiVersion is
	// outside SupportedAPIVersions.
	ErrUnsupportedVersion = errors.New("srx(config): unsupported apiVersion")
)

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// File is the on-disk configuration document.
//
//	apiVersion: "1.0.0"
//	discovery:
//	  order: path
//	  maxUnwrap: 8
//	  embedDepth: 16
//	cache:
//	  policy: forever
type File struct {
	APIVersion string        `yaml:"apiVersion"`
	Discovery  DiscoveryFile `yaml:"discovery"`
	Cache      CacheFile     `yaml:"cache"`
}

// DiscoveryFile is the discovery section of File.
type DiscoveryFile struct {
	Order      string `yaml:"order"`
	MaxUnwrap  *int   `yaml:"maxUnwrap"`
	EmbedDepth *int   `yaml:"embedDepth"`
}

// CacheFile is the cache section of File.
type CacheFile struct {
	Policy string `yaml:"policy"`
}

// Options converts f into config options. Unset fields keep their defaults.
func (f File) Options() ([]Option, error) {
	var opts []Option
	if f.Discovery.Order != "" {
		o, err := apis.ParseOrder(f.Discovery.Order)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOrder(o))
	}
	if f.Discovery.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*f.Discovery.MaxUnwrap))
	}
	if f.Discovery.EmbedDepth != nil {
		opts = append(opts, WithEmbedDepth(*f.Discovery.EmbedDepth))
	}
	if f.Cache.Policy != "" {
		p, err := apis.ParseCachePolicy(f.Cache.Policy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCachePolicy(p))
	}
	return opts, nil
}

// LoadFile reads, validates and converts the YAML config file at path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates YAML config data against the embedded schema and the
// supported apiVersion range, then converts it into an apis.Config.
func Parse(data []byte) (apis.Config, error) {
	if err := validate(data); err != nil {
		return apis.Config{}, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := checkVersion(f.APIVersion); err != nil {
		return apis.Config{}, err
	}

	opts, err := f.Options()
	if err != nil {
		return apis.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return NewConfig(opts...), nil
}

// checkVersion ensures v satisfies SupportedAPIVersions.
func checkVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, v, err)
	}
	c, err := semver.NewConstraint(SupportedAPIVersions)
	if err != nil {
		return err
	}
	if !c.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, ver, SupportedAPIVersions)
	}
	return nil
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("config.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks raw YAML data against the embedded schema.
func validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidConfig)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// normalizeYAML converts map[any]any nodes into map[string]any so the
// document can be marshaled to JSON.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeYAML(e)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case []any:
		for i, e := range x {
			x[i] = normalizeYAML(e)
		}
		return x
	default:
		return v
	}
}
