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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/config"
)

func TestParse_Full(t *testing.T) {
	cfg, err := config.Parse([]byte(`
apiVersion: "1.2.0"
discovery:
  order: registration
  maxUnwrap: 2
  embedDepth: 4
cache:
  policy: none
`))
	require.NoError(t, err)
	require.Equal(t, apis.Config{
		MaxUnwrap:   2,
		Order:       apis.OrderRegistration,
		CachePolicy: apis.CacheNone,
		EmbedDepth:  4,
	}, cfg)
}

func TestParse_MinimalKeepsDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`apiVersion: "1"`))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing apiVersion": "discovery:\n  order: path\n",
		"unknown order":      "apiVersion: \"1.0.0\"\ndiscovery:\n  order: random\n",
		"unknown key":        "apiVersion: \"1.0.0\"\nextra: true\n",
		"negative unwrap":    "apiVersion: \"1.0.0\"\ndiscovery:\n  maxUnwrap: -1\n",
		"bad policy":         "apiVersion: \"1.0.0\"\ncache:\n  policy: lru\n",
		"empty document":     "",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestParse_UnsupportedVersion(t *testing.T) {
	_, err := config.Parse([]byte(`apiVersion: "2.0.0"`))
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)

	_, err = config.Parse([]byte(`apiVersion: "not-a-version"`))
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiVersion: \"1.0.0\"\ncache:\n  policy: none\n"), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, apis.CacheNone, cfg.CachePolicy)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
