// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/consensys/go-retypd/pkg/infer"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/util/source"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure the logger.  Colours are only used when logging to a terminal,
// since escapes are just noise in a log file.
func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
		DisableTimestamp: true,
	})
	//
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// Determine the analysis configuration.  This starts from either the defaults
// or the given configuration file, and then applies any flags explicitly
// provided on the command line.
func getConfig(cmd *cobra.Command) infer.Config {
	config := infer.DefaultConfig()
	//
	if filename := GetString(cmd, "config"); filename != "" {
		var err error
		//
		if config, err = infer.LoadConfig(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	flags := cmd.Flags()
	//
	if flags.Changed("saturate") {
		config.Saturate = GetFlag(cmd, "saturate")
	}
	//
	if flags.Changed("collapse") {
		config.CollapseEquivalences = GetFlag(cmd, "collapse")
	}
	//
	if flags.Changed("max-scc") {
		config.MaxComponentSize = GetUint(cmd, "max-scc")
	}
	//
	if flags.Changed("workers") {
		config.Workers = GetUint(cmd, "workers")
	}
	//
	log.Debugf("configuration %+v", config)
	//
	return config
}

// Read the units of a given constraint file, restricted to those named by the
// "unit" flag (if any).  Syntax errors are printed and terminate execution.
func readUnits(cmd *cobra.Command, filename string) []*schema.Unit {
	units, errs, err := schema.ReadConstraintFile(filename)
	// Handle errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	} else if len(errs) > 0 {
		printSyntaxErrors(os.Stdout, errs)
		os.Exit(4)
	}
	//
	units, err = selectUnits(units, GetStringArray(cmd, "unit"))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return units
}

// Select those units matching the given names, in the order they appear.  When
// no names are given, all units are selected.
func selectUnits(units []*schema.Unit, names []string) ([]*schema.Unit, error) {
	if len(names) == 0 {
		return units, nil
	}
	//
	var selected []*schema.Unit
	//
	for _, name := range names {
		index := slices.IndexFunc(units, func(u *schema.Unit) bool { return u.Name == name })
		//
		if index < 0 {
			return nil, fmt.Errorf("unknown unit \"%s\"", name)
		}
		//
		selected = append(selected, units[index])
	}
	//
	return selected, nil
}

// Print zero or more syntax errors with appropriate highlighting.
func printSyntaxErrors(out io.Writer, errs []source.SyntaxError) {
	for _, err := range errs {
		printSyntaxError(out, &err)
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-(span.Start()-line.Start()), span.Length())
	// Print error + line number
	fmt.Fprintf(out, "%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print separator line
	fmt.Fprintln(out)
	// Print line
	fmt.Fprintln(out, line.String())
	// Print indent
	fmt.Fprint(out, strings.Repeat(" ", span.Start()-line.Start()))
	// Print highlight
	fmt.Fprintln(out, strings.Repeat("^", max(length, 1)))
}
