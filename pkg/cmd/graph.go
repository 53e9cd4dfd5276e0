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
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [flags] constraint_file",
	Short: "Print the constraint graph of a set of constraints.",
	Long: `Print the constraint graph of a set of constraints.
	For each unit in the constraint file, this prints every node of its constraint
	graph along with its outgoing edges.  Saturation and equivalence collapsing are
	applied as configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		config := getConfig(cmd)
		units := readUnits(cmd, args[0])
		// Go!
		results, err := infer.InferAll(context.Background(), units, config)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		printGraphs(os.Stdout, results, GetFlag(cmd, "sequence"))
	},
}

// Print the constraint graph of each result, optionally followed by its path
// sequence.
func printGraphs(out io.Writer, results []*infer.Result, sequence bool) {
	for i, result := range results {
		g := result.Graph()
		//
		if i != 0 {
			fmt.Fprintln(out)
		}
		//
		fmt.Fprintf(out, "unit %s (%d nodes, %d edges):\n", result.Unit().Name, len(g.Nodes()), g.EdgeCount())
		fmt.Fprint(out, g.String())
		//
		if sequence {
			fmt.Fprintln(out, "sequence:")
			//
			for _, step := range result.Sequence() {
				fmt.Fprintf(out, "  %s -> %s: %s\n", g.Node(step.From), g.Node(step.To), step.Exp)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("sequence", false, "print the path sequence of each graph")
}
