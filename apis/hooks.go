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

package apis

// Hooks observes instances of resolved types. OnCreate fires when a new
// instance is constructed; OnChange fires when an existing instance is
// mutated in place. The registry itself performs no side effects here.
type Hooks interface {
	OnCreate(instance any)
	OnChange(instance any)
}

// NopHooks is the default Hooks implementation. Both callbacks do nothing.
type NopHooks struct{}

// Ensure NopHooks implements Hooks.
var _ Hooks = NopHooks{}

func (NopHooks) OnCreate(any) {}

func (NopHooks) OnChange(any) {}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	Create func(instance any)
	Change func(instance any)
}

// Ensure HookFuncs implements Hooks.
var _ Hooks = HookFuncs{}

// OnCreate calls h.Create if set.
func (h HookFuncs) OnCreate(instance any) {
	if h.Create != nil {
		h.Create(instance)
	}
}

// OnChange calls h.Change if set.
func (h HookFuncs) OnChange(instance any) {
	if h.Change != nil {
		h.Change(instance)
	}
}
