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

// Package spells is a small catalog of self-registering types used by
// srxctl and the examples.
package spells

import (
	"fmt"
	"reflect"

	"dirpx.dev/srx"
	"dirpx.dev/srx/apis"
)

func init() {
	srx.MustRegister(reflect.TypeFor[Effect](), apis.Meta{Unit: "Spells", Name: "Spells.Effect"})
	srx.MustRegister(reflect.TypeOf(Spell{}), apis.Meta{})
	srx.MustRegister(reflect.TypeOf(Fireball{}), apis.Meta{})
	srx.MustRegister(reflect.TypeOf(GreaterFireball{}), apis.Meta{})
	srx.MustRegister(reflect.TypeOf(Frostbolt{}), apis.Meta{})
	srx.MustRegister(reflect.TypeOf(Ward{}), apis.Meta{Unit: "Spells", Name: "Spells.Ward", DisplayName: "Ward"})
	srx.MustRegister(reflect.TypeOf(Potion{}), apis.Meta{})
}

// Effect is anything that can be applied to a target.
type Effect interface {
	Apply(target string) string
}

// Spell is the base of every castable spell.
type Spell struct {
	Mana int `yaml:"mana"`
}

func (Spell) TypeUnit() string { return "Spells" }
func (Spell) TypeName() string { return "Spells.Spell" }

type Fireball struct {
	Spell
	Radius int `yaml:"radius"`
}

func (Fireball) TypeName() string    { return "Spells.Fireball" }
func (Fireball) DisplayName() string { return "Fireball" }

func (f Fireball) Apply(target string) string {
	return fmt.Sprintf("%s burns (radius %d)", target, f.Radius)
}

type GreaterFireball struct {
	Fireball
}

func (GreaterFireball) TypeName() string    { return "Spells.GreaterFireball" }
func (GreaterFireball) DisplayName() string { return "Greater Fireball" }

// Frostbolt has no display name.
type Frostbolt struct {
	Spell
	Slow float64 `yaml:"slow"`
}

func (Frostbolt) TypeName() string { return "Spells.Frostbolt" }

func (f *Frostbolt) Apply(target string) string {
	return fmt.Sprintf("%s is slowed by %.0f%%", target, f.Slow*100)
}

// Ward is an effect that is not a spell.
type Ward struct{}

func (Ward) Apply(target string) string { return target + " is warded" }

// Potion keeps its default naming.
type Potion struct {
	Heal int `yaml:"heal"`
}

func (p Potion) Apply(target string) string {
	return fmt.Sprintf("%s heals %d", target, p.Heal)
}
