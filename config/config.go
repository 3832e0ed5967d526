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
	"dirpx.dev/srx/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultOrder represents the default for Order.
	// Sorting by path keeps descriptor order stable across runs.
	DefaultOrder = apis.OrderPath
	// DefaultCachePolicy represents the default for CachePolicy.
	DefaultCachePolicy = apis.CacheForever
	// DefaultEmbedDepth represents the default for EmbedDepth.
	DefaultEmbedDepth = 16
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure limits are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.EmbedDepth <= 0 {
		cfg.EmbedDepth = DefaultEmbedDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:   DefaultMaxUnwrap,
		Order:       DefaultOrder,
		CachePolicy: DefaultCachePolicy,
		EmbedDepth:  DefaultEmbedDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithOrder sets the Order option.
func WithOrder(o apis.Order) Option {
	return func(c *apis.Config) {
		c.Order = o
	}
}

// WithCachePolicy sets the CachePolicy option.
func WithCachePolicy(p apis.CachePolicy) Option {
	return func(c *apis.Config) {
		c.CachePolicy = p
	}
}

// WithEmbedDepth sets the EmbedDepth option.
// A non-positive value resets to the default.
func WithEmbedDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.EmbedDepth = DefaultEmbedDepth
			return
		}
		c.EmbedDepth = depth
	}
}
