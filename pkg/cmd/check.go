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
	"github.com/consensys/go-retypd/pkg/util/source"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] constraint_file(s)",
	Short: "Check one or more constraint files are well-formed.",
	Long: `Check one or more constraint files are well-formed.
	Syntax errors are reported with the offending line highlighted.  Optionally,
	inference can also be performed on each unit to check it can be sequenced
	within the configured bounds.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		files, err := source.ReadFiles(args...)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		units, errs := checkFiles(files)
		//
		if len(errs) > 0 {
			printSyntaxErrors(os.Stdout, errs)
			os.Exit(4)
		} else if GetFlag(cmd, "infer") {
			_, err := infer.InferAll(context.Background(), units, getConfig(cmd))
			//
			if err != nil {
				fmt.Println(err)
				os.Exit(3)
			}
		}
		//
		if !GetFlag(cmd, "quiet") {
			printCheckSummary(os.Stdout, units)
		}
	},
}

// Parse the units of each file, collecting all syntax errors encountered.
func checkFiles(files []source.File) ([]*schema.Unit, []source.SyntaxError) {
	var (
		units  []*schema.Unit
		errors []source.SyntaxError
	)
	//
	for i := range files {
		us, errs := schema.ParseUnits(&files[i])
		units = append(units, us...)
		errors = append(errors, errs...)
	}
	//
	return units, errors
}

func printCheckSummary(out io.Writer, units []*schema.Unit) {
	var constraints = 0
	//
	for _, unit := range units {
		constraints += len(unit.Constraints)
	}
	//
	fmt.Fprintf(out, "ok: %d unit(s), %d constraint(s)\n", len(units), constraints)
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("infer", false, "perform inference on each unit")
	checkCmd.Flags().BoolP("quiet", "q", false, "suppress output (e.g. warnings)")
}
