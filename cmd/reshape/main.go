// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/reshape/cmd/reshape/commands"
	"github.com/walteh/reshape/cmd/reshape/opts"
	"github.com/walteh/reshape/cmd/reshape/pkg/ui"
)

func main() {
	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "reshape",
		Short: "Scoped find and transform for text and source code",
		Long: `reshape finds the parts of its input that are in scope, either regular
expression matches or tree-sitter query captures, and transforms only those
parts. Everything out of scope is left byte for byte as it was.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			ctx := zerolog.DefaultContextLogger.WithContext(cmd.Context())
			cmd.SetContext(ctx)
			return loadRootOpts(ctx, rootOpts)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewLanguagesCmd(),
		newVersionCmd(),
	)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.NewUserLogger(zerolog.Nop().WithContext(ctx)).LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
			return err
		},
	}
}
