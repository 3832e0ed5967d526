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

package builder

import (
	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/cache"
	"dirpx.dev/srx/registry"
	"dirpx.dev/srx/resolver"
	"dirpx.dev/srx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry together with their metadata.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Type, apis.Meta{Unit: e.Unit, Name: e.Name, DisplayName: e.DisplayName})
		}
	}
	return nreg
}

// BuildCache returns prev when it already follows cfg.CachePolicy, so a
// reconfiguration that leaves the policy alone keeps every cached discovery.
func (b *builder) BuildCache(cfg apis.Config, prev apis.Cache) apis.Cache {
	if prev != nil && prev.Policy() == cfg.CachePolicy {
		return prev
	}
	return cache.New(cfg.CachePolicy)
}

// BuildResolver builds and returns a new apis.Resolver over reg. Interface
// bases are handled before struct bases.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry) apis.Resolver {
	return resolver.New(
		cfg,
		reg,
		strategy.NewInterfaceStrategy(),
		strategy.NewEmbedStrategy(cfg.EmbedDepth),
	)
}
