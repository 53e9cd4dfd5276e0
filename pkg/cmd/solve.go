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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-retypd/pkg/infer"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve [flags] constraint_file",
	Short: "Solve the paths between type variables of a set of constraints.",
	Long: `Solve the paths between type variables of a set of constraints.
	For each unit in the constraint file, this reports the path expression from
	each source variable to every node it reaches in the constraint graph.  When
	no sources are given, every base variable of the unit is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config := getConfig(cmd)
		units := readUnits(cmd, args[0])
		sources := parseSources(GetStringArray(cmd, "source"))
		format := GetString(cmd, "format")
		// Go!
		results, err := infer.InferAll(context.Background(), units, config)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		reports := summariseAll(results, sources)
		//
		switch format {
		case "table":
			err = printSummaryTable(os.Stdout, reports, termio.IsTerminal(os.Stdout), termio.Width(os.Stdout))
		case "yaml":
			err = printSummaryYaml(os.Stdout, reports)
		default:
			err = fmt.Errorf("unknown output format \"%s\"", format)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// unitReport captures the summaries computed for a given unit.
type unitReport struct {
	Unit      string         `yaml:"unit"`
	Summaries []sourceReport `yaml:"summaries"`
}

// sourceReport captures the paths from a given source.
type sourceReport struct {
	Source string       `yaml:"source"`
	Paths  []pathReport `yaml:"paths"`
}

type pathReport struct {
	Target string `yaml:"target"`
	Path   string `yaml:"path"`
}

// Parse the source variables given on the command line.
func parseSources(args []string) []schema.DerivedTypeVariable {
	sources := make([]schema.DerivedTypeVariable, len(args))
	//
	for i, arg := range args {
		var err error
		//
		if sources[i], err = schema.ParseDerivedTypeVariable(arg); err != nil {
			fmt.Printf("invalid source \"%s\": %s\n", arg, err)
			os.Exit(2)
		}
	}
	//
	return sources
}

func summariseAll(results []*infer.Result, sources []schema.DerivedTypeVariable) []unitReport {
	reports := make([]unitReport, len(results))
	//
	for i, result := range results {
		reports[i] = summarise(result, sources)
	}
	//
	return reports
}

// Summarise the paths of a given result from the given sources or, if there are
// none, from the base variables of its unit.  Sources not occurring in the unit
// are ignored.
func summarise(result *infer.Result, sources []schema.DerivedTypeVariable) unitReport {
	report := unitReport{Unit: result.Unit().Name}
	//
	if len(sources) == 0 {
		sources = result.Sources()
	}
	//
	for _, source := range sources {
		summary, ok := result.Solve(source)
		//
		if !ok {
			log.Debugf("source %s does not occur in unit %s", source.String(), report.Unit)
			continue
		}
		//
		paths := sourceReport{Source: summary.Source(), Paths: []pathReport{}}
		//
		for _, e := range summary.Entries() {
			paths.Paths = append(paths.Paths, pathReport{e.To, e.Exp.String()})
		}
		//
		report.Summaries = append(report.Summaries, paths)
	}
	//
	return report
}

// Print summaries as a table, optionally using colour.  A non-zero width bounds
// the width of the path column.
func printSummaryTable(out io.Writer, reports []unitReport, colour bool, width uint) error {
	var (
		table  = termio.NewTablePrinter(4)
		header = table.AddRow("unit", "source", "target", "path")
	)
	//
	for col := range uint(4) {
		table.SetEscape(col, header, termio.BoldAnsiEscape())
	}
	//
	for _, report := range reports {
		for _, summary := range report.Summaries {
			for _, path := range summary.Paths {
				row := table.AddRow(report.Unit, summary.Source, path.Target, path.Path)
				table.SetEscape(3, row, termio.NewAnsiEscape().FgColour(termio.TERM_CYAN))
			}
		}
	}
	//
	if width != 0 {
		table.SetMaxWidth(3, max(width/2, 8))
	}
	//
	table.AnsiEscapes(colour)
	//
	return table.Print(out)
}

// Print summaries as a YAML document.
func printSummaryYaml(out io.Writer, reports []unitReport) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	//
	if err := encoder.Encode(reports); err != nil {
		return err
	}
	//
	return encoder.Close()
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringArrayP("source", "s", nil, "type variable(s) to solve from")
	solveCmd.Flags().StringP("format", "f", "table", "output format (table or yaml)")
}
