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

package typereg_test

import (
	"bytes"
	"log/slog"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/builder"
	"dirpx.dev/srx/cache"
	"dirpx.dev/srx/config"
	"dirpx.dev/srx/typereg"
)

type Effect interface{ Apply() }

type Spell struct{ Mana int }

// Fireball names itself.
type Fireball struct{ Spell }

func (Fireball) Apply()              {}
func (Fireball) TypeUnit() string    { return "Spells" }
func (Fireball) TypeName() string    { return "Spells.Fireball" }
func (Fireball) DisplayName() string { return "Fireball" }

type GreaterFireball struct{ Fireball }

func (GreaterFireball) TypeName() string { return "Spells.GreaterFireball" }

// Cinder declares no names of its own.
type Cinder struct{ Fireball }

type Blink struct{ Spell }

func (*Blink) Apply() {}

type MyClass struct{}

type Late struct{ Spell }

type env struct {
	reg   apis.Registry
	res   apis.Resolver
	cache apis.Cache
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil)
	require.NoError(t, reg.Register(reflect.TypeOf(Spell{}), apis.Meta{}))
	require.NoError(t, reg.Register(reflect.TypeOf(Fireball{}), apis.Meta{}))
	require.NoError(t, reg.Register(reflect.TypeOf(GreaterFireball{}), apis.Meta{Unit: "Spells"}))
	require.NoError(t, reg.Register(reflect.TypeOf(Blink{}), apis.Meta{Unit: "Spells", Name: "Spells.Blink"}))
	require.NoError(t, reg.Register(reflect.TypeOf(MyClass{}), apis.Meta{Unit: "MyAssembly", Name: "MyNamespace.MyClass"}))
	return &env{reg: reg, res: b.BuildResolver(cfg, reg), cache: b.BuildCache(cfg, nil)}
}

func paths(ds []apis.Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Path
	}
	return out
}

func TestNew_Interface(t *testing.T) {
	e := newEnv(t)

	r, err := typereg.For[Effect](e.res, e.cache)
	require.NoError(t, err)

	want := []string{"Spells.Blink", "Spells.Fireball", "Spells.GreaterFireball"}
	if diff := cmp.Diff(want, paths(r.Descriptors())); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, reflect.TypeFor[Effect](), r.Base())
	assert.Equal(t, 3, r.Len())
}

func TestNew_StructIncludesGrandchildren(t *testing.T) {
	e := newEnv(t)

	r, err := typereg.New(e.res, e.cache, reflect.TypeOf(&Spell{}))
	require.NoError(t, err)

	got := paths(r.Descriptors())
	assert.Equal(t, []string{"Spells.Blink", "Spells.Fireball", "Spells.GreaterFireball"}, got)
	_, ok := r.DescriptorByPath(reflect.TypeOf(Spell{}).PkgPath() + ".Spell")
	assert.False(t, ok, "base must be excluded")
}

func TestNew_CacheIsNeverInvalidated(t *testing.T) {
	e := newEnv(t)

	first, err := typereg.New(e.res, e.cache, reflect.TypeOf(Spell{}))
	require.NoError(t, err)

	require.NoError(t, e.reg.Register(reflect.TypeOf(Late{}), apis.Meta{}))

	second, err := typereg.New(e.res, e.cache, reflect.TypeOf(Spell{}))
	require.NoError(t, err)
	assert.Equal(t, first.Descriptors(), second.Descriptors())
	assert.Equal(t, 1, e.cache.Len())

	// A fresh cache sees the new type.
	fresh, err := typereg.New(e.res, cache.New(apis.CacheForever), reflect.TypeOf(Spell{}))
	require.NoError(t, err)
	assert.Equal(t, first.Len()+1, fresh.Len())

	// So does an uncached registry.
	uncached, err := typereg.New(e.res, nil, reflect.TypeOf(Spell{}))
	require.NoError(t, err)
	assert.Equal(t, fresh.Len(), uncached.Len())
}

func TestNew_InvalidBase(t *testing.T) {
	e := newEnv(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r, err := typereg.New(e.res, e.cache, nil, typereg.WithLogger(log))
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	require.NotNil(t, r)
	assert.Zero(t, r.Len())
	assert.Nil(t, r.Base())
	assert.Contains(t, buf.String(), "level=ERROR")

	r, err = typereg.New(nil, e.cache, reflect.TypeOf(Spell{}))
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.Zero(t, r.Len())
}

func TestNew_NilLoggerUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	e := newEnv(t)
	_, err := typereg.New(e.res, e.cache, nil, typereg.WithLogger(nil))
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.Contains(t, buf.String(), "type registry discovery failed")

	buf.Reset()
	_, err = typereg.NewFromTypes(e.res, nil, typereg.WithLogger(nil))
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.Contains(t, buf.String(), "type registry construction failed")
}

func TestNewFromTypes(t *testing.T) {
	e := newEnv(t)

	types := []reflect.Type{reflect.TypeOf(MyClass{}), reflect.TypeOf(Fireball{})}
	r, err := typereg.NewFromTypes(e.res, types)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyNamespace.MyClass", "Spells.Fireball"}, paths(r.Descriptors()))
	assert.Nil(t, r.Base())
}

func TestEmbeddedNamesAreNotInherited(t *testing.T) {
	e := newEnv(t)
	cinder := reflect.TypeOf(Cinder{})
	require.NoError(t, e.reg.Register(cinder, apis.Meta{}))

	ent, ok := e.reg.LookupType(cinder)
	require.True(t, ok)
	assert.Equal(t, "Spells", ent.Unit, "unit is inherited")
	assert.Equal(t, cinder.PkgPath()+".Cinder", ent.Name)

	d := e.res.Describe(cinder)
	assert.Equal(t, cinder.PkgPath()+".Cinder", d.Path)
	assert.False(t, d.HasDisplayName())

	r, err := typereg.NewFromTypes(e.res, []reflect.Type{reflect.TypeOf(Fireball{}), cinder})
	require.NoError(t, err)
	assert.Equal(t, []string{"Spells.Fireball", cinder.PkgPath() + ".Cinder"}, paths(r.Descriptors()))

	got, ok := r.DescriptorByPath(cinder.PkgPath() + ".Cinder")
	require.True(t, ok)
	assert.Equal(t, cinder, got.Type)
}

func TestNewFromTypes_Invalid(t *testing.T) {
	e := newEnv(t)

	r, err := typereg.NewFromTypes(e.res, []reflect.Type{})
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	require.NotNil(t, r)
	assert.Empty(t, r.Descriptors())

	r, err = typereg.NewFromTypes(e.res, nil)
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
	assert.Zero(t, r.Len())

	_, err = typereg.NewFromTypes(e.res, []reflect.Type{reflect.TypeOf(Fireball{}), nil})
	require.ErrorIs(t, err, apis.ErrInvalidArgument)
}

func TestDescriptorByPath(t *testing.T) {
	e := newEnv(t)
	r, err := typereg.For[Spell](e.res, e.cache)
	require.NoError(t, err)

	d, ok := r.DescriptorByPath("Spells.Fireball")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(Fireball{}), d.Type)
	assert.Equal(t, "Fireball", d.DisplayName)

	d, ok = r.DescriptorByPath("Spells.GreaterFireball")
	require.True(t, ok)
	assert.False(t, d.HasDisplayName())

	for _, p := range []string{"spells.fireball", "Spells.Fire", "Spells.Fireball ", ""} {
		_, ok := r.DescriptorByPath(p)
		assert.False(t, ok, p)
	}
}

func TestTypeByName(t *testing.T) {
	e := newEnv(t)

	got, err := typereg.TypeByName(e.res, "MyAssembly MyNamespace.MyClass")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(MyClass{}), got)

	got, err = typereg.TypeByName(e.res, "Spells Spells.Fireball")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Fireball{}), got)

	cases := []struct {
		id   string
		want error
	}{
		{"", apis.ErrInvalidArgument},
		{"OneTokenOnly", apis.ErrMalformedIdentifier},
		{"MyAssembly MyNamespace.Missing", apis.ErrTypeNotFound},
		{"OtherAssembly MyNamespace.MyClass", apis.ErrTypeNotFound},
	}
	for _, tc := range cases {
		got, err := typereg.TypeByName(e.res, tc.id)
		require.ErrorIs(t, err, tc.want, tc.id)
		assert.Nil(t, got, tc.id)
	}
}

func TestRetargetByName(t *testing.T) {
	e := newEnv(t)
	r, err := typereg.For[Spell](e.res, e.cache)
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	require.NoError(t, r.RetargetByName("Spells Spells.Fireball"))
	assert.Equal(t, reflect.TypeOf(Fireball{}), r.Base())
	assert.Equal(t, []string{"Spells.GreaterFireball"}, paths(r.Descriptors()))

	// Failures leave the current set in place.
	before := r.Descriptors()
	require.ErrorIs(t, r.RetargetByName(""), apis.ErrInvalidArgument)
	require.ErrorIs(t, r.RetargetByName("Spells Spells.Nope"), apis.ErrTypeNotFound)
	require.ErrorIs(t, r.RetargetByName("Spells"), apis.ErrMalformedIdentifier)
	assert.Equal(t, before, r.Descriptors())
	assert.Equal(t, reflect.TypeOf(Fireball{}), r.Base())
}

func TestInstantiateAndHooks(t *testing.T) {
	e := newEnv(t)
	var created, changed []any
	hooks := apis.HookFuncs{
		Create: func(v any) { created = append(created, v) },
		Change: func(v any) { changed = append(changed, v) },
	}
	r, err := typereg.For[Effect](e.res, e.cache, typereg.WithHooks(hooks))
	require.NoError(t, err)

	v, err := r.Instantiate("Spells.Blink")
	require.NoError(t, err)
	b, ok := v.(*Blink)
	require.True(t, ok)
	require.Equal(t, []any{v}, created)

	b.Mana = 5
	r.Change(b)
	require.Equal(t, []any{v}, changed)

	_, err = r.Instantiate("Spells.Unknown")
	require.ErrorIs(t, err, apis.ErrTypeNotFound)
	assert.Len(t, created, 1)
}

func TestDefaultHooksAreNoop(t *testing.T) {
	e := newEnv(t)
	r, err := typereg.For[Effect](e.res, e.cache, typereg.WithHooks(nil))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		v, err := r.Instantiate("Spells.Fireball")
		require.NoError(t, err)
		r.Change(v)
	})
}

func TestZeroValue(t *testing.T) {
	var r typereg.TypeRegistry

	assert.Zero(t, r.Len())
	assert.Nil(t, r.Base())
	_, ok := r.DescriptorByPath("Spells.Fireball")
	assert.False(t, ok)
	_, err := r.Instantiate("Spells.Fireball")
	assert.ErrorIs(t, err, apis.ErrTypeNotFound)
	assert.ErrorIs(t, r.RetargetByName("Spells Spells.Fireball"), apis.ErrInvalidArgument)
	assert.NotPanics(t, func() { r.Change(&Fireball{}) })
}
