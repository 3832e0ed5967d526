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

package srx

import (
	"context"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/builder"
	"dirpx.dev/srx/cache"
	"dirpx.dev/srx/config"
	"dirpx.dev/srx/registry"
)

// ---------------------- Fixtures ----------------------

type Effect interface{ Apply() }

type Spell struct{ Mana int }

type Fireball struct{ Spell }

func (Fireball) Apply()              {}
func (Fireball) TypeUnit() string    { return "Spells" }
func (Fireball) TypeName() string    { return "Spells.Fireball" }
func (Fireball) DisplayName() string { return "Fireball" }

type Frostbolt struct{ Spell }

func (*Frostbolt) Apply() {}

type Rune struct{}

type Glyph struct{ Rune }

type Sigil struct{ Glyph }

type slot[T any] struct{}

// reset publishes a clean snapshot built by b with an empty registry and
// an empty cache.
func reset(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, registry.New(cfg), cache.New(cfg.CachePolicy), b)
}

// ---------------------- Test doubles (mocks) ----------------------

// mockBuilder wraps the default builder and records what it was asked for.
type mockBuilder struct {
	mu         sync.Mutex
	inner      apis.Builder
	lastCfg    apis.Config
	regCounter int
	cacheCalls int
	resCounter int
	nilCache   bool
}

func newMockBuilder() *mockBuilder { return &mockBuilder{inner: builder.New()} }

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	b.lastCfg = cfg
	b.regCounter++
	b.mu.Unlock()
	return b.inner.BuildRegistry(cfg, prev)
}

func (b *mockBuilder) BuildCache(cfg apis.Config, prev apis.Cache) apis.Cache {
	b.mu.Lock()
	b.cacheCalls++
	nilCache := b.nilCache
	b.mu.Unlock()
	if nilCache {
		return nil
	}
	return b.inner.BuildCache(cfg, prev)
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, reg apis.Registry) apis.Resolver {
	b.mu.Lock()
	b.resCounter++
	b.mu.Unlock()
	return b.inner.BuildResolver(cfg, reg)
}

// ---------------------- Tests ----------------------

func TestRegisterAndNew(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})
	if err := RegisterFor[Frostbolt](apis.Meta{Unit: "Spells", Name: "Spells.Frostbolt"}); err != nil {
		t.Fatalf("RegisterFor failed: %v", err)
	}

	r, err := NewFor[Effect]()
	if err != nil {
		t.Fatalf("NewFor failed: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	d, ok := r.DescriptorByPath("Spells.Fireball")
	if !ok || d.DisplayName != "Fireball" {
		t.Fatalf("DescriptorByPath = %+v, %v", d, ok)
	}

	got, err := TypeByName("Spells Spells.Frostbolt")
	if err != nil || got != reflect.TypeOf(Frostbolt{}) {
		t.Fatalf("TypeByName = %v, %v", got, err)
	}

	r, err = NewFromTypes([]reflect.Type{reflect.TypeOf(Frostbolt{})})
	if err != nil || r.Len() != 1 {
		t.Fatalf("NewFromTypes = %d, %v", r.Len(), err)
	}
}

func TestMustRegister_Panics(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister(nil) did not panic")
		}
	}()
	MustRegister(nil, apis.Meta{})
}

func TestSetConfig_KeepsTypesAndCache(t *testing.T) {
	b := newMockBuilder()
	reset(t, b, config.DefaultConfig())
	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})

	if _, err := New(reflect.TypeOf(Spell{})); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	regBefore, cacheBefore, resBefore := Registry(), Cache(), Resolver()

	SetConfig(config.NewConfig(config.WithEmbedDepth(4)))

	if Registry() == regBefore || Resolver() == resBefore {
		t.Fatal("SetConfig did not rebuild registry and resolver")
	}
	if Cache() != cacheBefore || Cache().Len() != 1 {
		t.Fatal("SetConfig replaced a cache with an unchanged policy")
	}
	if _, err := TypeByName("Spells Spells.Fireball"); err != nil {
		t.Fatalf("registered type lost on SetConfig: %v", err)
	}

	b.mu.Lock()
	gotCfg := b.lastCfg
	b.mu.Unlock()
	if gotCfg.EmbedDepth != 4 {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}

	SetConfig(config.NewConfig(config.WithCachePolicy(apis.CacheNone)))
	if Cache() == cacheBefore || Cache().Policy() != apis.CacheNone {
		t.Fatal("SetConfig kept a cache with a different policy")
	}
	if Config().CachePolicy != apis.CacheNone {
		t.Fatalf("Config() = %+v", Config())
	}
}

func TestSetConfig_EmbedDepthChangesDiscovery(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	MustRegister(reflect.TypeOf(Glyph{}), apis.Meta{})
	MustRegister(reflect.TypeOf(Sigil{}), apis.Meta{})

	paths := func() []string {
		t.Helper()
		r, err := NewFor[Rune]()
		if err != nil {
			t.Fatalf("NewFor failed: %v", err)
		}
		var out []string
		for _, d := range r.Descriptors() {
			out = append(out, d.Path)
		}
		return out
	}

	if got := paths(); len(got) != 2 {
		t.Fatalf("default depth: paths = %v, want child and grandchild", got)
	}
	cacheBefore := Cache()

	SetConfig(config.NewConfig(config.WithEmbedDepth(1)))
	if Cache() != cacheBefore {
		t.Fatal("SetConfig replaced a cache with an unchanged policy")
	}
	got := paths()
	if len(got) != 1 || got[0] != defaultPath(Glyph{}) {
		t.Fatalf("depth 1: paths = %v, want only %s", got, defaultPath(Glyph{}))
	}

	SetConfig(config.DefaultConfig())
	if got := paths(); len(got) != 2 {
		t.Fatalf("default depth again: paths = %v", got)
	}
}

func defaultPath(v any) string {
	t := reflect.TypeOf(v)
	return t.PkgPath() + "." + t.Name()
}

func TestRegister_NotLostDuringSetConfig(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())

	types := []reflect.Type{
		reflect.TypeFor[slot[int8]](), reflect.TypeFor[slot[int16]](),
		reflect.TypeFor[slot[int32]](), reflect.TypeFor[slot[int64]](),
		reflect.TypeFor[slot[uint8]](), reflect.TypeFor[slot[uint16]](),
		reflect.TypeFor[slot[uint32]](), reflect.TypeFor[slot[uint64]](),
		reflect.TypeFor[slot[float32]](), reflect.TypeFor[slot[float64]](),
		reflect.TypeFor[slot[string]](), reflect.TypeFor[slot[bool]](),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			SetConfig(config.NewConfig(config.WithEmbedDepth(1 + i%5)))
		}
	}()

	var wg sync.WaitGroup
	wg.Add(len(types))
	for _, rt := range types {
		go func() {
			defer wg.Done()
			if err := Register(rt, apis.Meta{}); err != nil {
				t.Errorf("Register(%v) failed: %v", rt, err)
			}
		}()
	}
	wg.Wait()
	<-done

	if got := Registry().Count(); got != len(types) {
		t.Fatalf("Count = %d, want %d", got, len(types))
	}
	for _, rt := range types {
		if _, ok := Registry().LookupType(rt); !ok {
			t.Fatalf("%v lost by a concurrent SetConfig", rt)
		}
	}
}

func TestSetBuilder_RebuildsEveryLayer(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})

	b := newMockBuilder()
	SetBuilder(b)
	SetBuilder(nil) // ignored

	if Builder() != b {
		t.Fatal("Builder() is not the builder set")
	}
	b.mu.Lock()
	regs, caches, ress := b.regCounter, b.cacheCalls, b.resCounter
	b.mu.Unlock()
	if regs != 1 || caches != 1 || ress != 1 {
		t.Fatalf("builder calls = %d/%d/%d, want 1/1/1", regs, caches, ress)
	}
	if Registry().Count() != 1 {
		t.Fatalf("registry lost entries on SetBuilder: %d", Registry().Count())
	}
}

func TestSetAll_PanicsOnNilLayer(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	defer reset(t, builder.New(), config.DefaultConfig())

	b := newMockBuilder()
	b.nilCache = true
	defer func() {
		if r := recover(); r != ErrNilCache {
			t.Fatalf("recover() = %v, want %v", r, ErrNilCache)
		}
	}()
	SetAll(nil, nil, nil, b)
}

func TestWarm(t *testing.T) {
	reset(t, builder.New(), config.DefaultConfig())
	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})
	MustRegister(reflect.TypeOf(Frostbolt{}), apis.Meta{})

	err := Warm(context.Background(), reflect.TypeFor[Effect](), reflect.TypeOf(Spell{}))
	if err != nil {
		t.Fatalf("Warm failed: %v", err)
	}
	if n := Cache().Len(); n != 2 {
		t.Fatalf("Cache().Len() = %d, want 2", n)
	}
}

func TestNew_Concurrent_With_SetConfig(t *testing.T) {
	reset(t, newMockBuilder(), config.DefaultConfig())
	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, err := NewFor[Effect](); err != nil {
					t.Errorf("NewFor failed: %v", err)
					return
				}
				_, _ = TypeByName("Spells Spells.Fireball")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(
				config.WithEmbedDepth(1+i%5),
				config.WithOrder(apis.Order(i%2)),
			))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}

func BenchmarkTypeByName(b *testing.B) {
	reset(b, builder.New(), config.DefaultConfig())
	MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = TypeByName("Spells Spells.Fireball")
	}
}
