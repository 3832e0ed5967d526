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

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/srx"
	"dirpx.dev/srx/apis"
	"dirpx.dev/srx/typereg"
)

// typeView is the printed form of a registered type or a descriptor.
type typeView struct {
	Identifier  string `yaml:"identifier,omitempty"`
	Path        string `yaml:"path"`
	DisplayName string `yaml:"displayName,omitempty"`
	GoType      string `yaml:"goType"`
}

func entryView(e apis.Entry) typeView {
	return typeView{
		Identifier:  e.Identifier(),
		Path:        e.Name,
		DisplayName: e.DisplayName,
		GoType:      e.Type.String(),
	}
}

func descriptorView(d apis.Descriptor) typeView {
	v := typeView{Path: d.Path, DisplayName: d.DisplayName, GoType: d.Type.String()}
	if e, ok := srx.Registry().LookupType(d.Type); ok {
		v.Identifier = e.Identifier()
	}
	return v
}

func (a *app) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List every registered type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := srx.Registry().Entries()
			views := make([]typeView, 0, len(entries))
			for _, e := range entries {
				views = append(views, entryView(e))
			}
			return a.print(cmd.OutOrStdout(), views)
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <identifier>",
		Short: "List the types compatible with a base type",
		Long:  `List the registered types compatible with the base type named by "<unit> <name>".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registryFor(args[0])
			if err != nil {
				return err
			}
			descs := r.Descriptors()
			views := make([]typeView, 0, len(descs))
			for _, d := range descs {
				views = append(views, descriptorView(d))
			}
			if len(views) == 0 && !a.yaml() {
				fmt.Fprintln(cmd.OutOrStdout(), "No compatible types.")
				return nil
			}
			return a.print(cmd.OutOrStdout(), views)
		},
	}
}

func (a *app) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <identifier>",
		Short: "Resolve an identifier to a registered type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := srx.TypeByName(args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), []typeView{descriptorView(srx.Resolver().Describe(t))})
		},
	}
}

func (a *app) newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <identifier> <path>",
		Short: "Show the descriptor at path among a base type's compatible types",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.registryFor(args[0])
			if err != nil {
				return err
			}
			d, ok := r.DescriptorByPath(args[1])
			if !ok {
				return apis.NewTypeNotFoundError("", args[1])
			}
			return a.print(cmd.OutOrStdout(), []typeView{descriptorView(d)})
		},
	}
}

// registryFor builds a TypeRegistry for the base type named by id.
func (a *app) registryFor(id string) (*typereg.TypeRegistry, error) {
	base, err := srx.TypeByName(id)
	if err != nil {
		return nil, err
	}
	// Execute reports the returned error; logging it here would print it twice.
	r, err := srx.New(base, typereg.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		return nil, err
	}
	a.log.Debug("discovered compatible types", "base", id, "count", r.Len())
	return r, nil
}

func (a *app) print(w io.Writer, views []typeView) error {
	if a.yaml() {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tDISPLAY NAME\tGO TYPE")
	for _, v := range views {
		display := v.DisplayName
		if display == "" {
			display = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Identifier, display, v.GoType)
	}
	return tw.Flush()
}
