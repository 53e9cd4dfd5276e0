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
package infer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config determines how constraint graphs are constructed and solved.
type Config struct {
	// Saturate determines whether shortcut edges are added to the graph for
	// labels which are forgotten and subsequently recalled.
	Saturate bool `yaml:"saturate"`
	// CollapseEquivalences determines whether nodes which are mutual subtypes
	// are merged together before solving.
	CollapseEquivalences bool `yaml:"collapse-equivalences"`
	// MaxComponentSize bounds the number of nodes in any strongly connected
	// component, since elimination is cubic in this.  Units exceeding this are
	// aborted.  Zero indicates no bound.
	MaxComponentSize uint `yaml:"max-component-size"`
	// Workers determines the maximum number of units inferred in parallel.
	// Zero indicates one worker per available processor.
	Workers uint `yaml:"workers"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Saturate:             true,
		CollapseEquivalences: true,
		MaxComponentSize:     0,
		Workers:              0,
	}
}

// LoadConfig reads a configuration from a given YAML file.  Keys which are not
// present retain their default values, whilst unknown keys are an error.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	//
	return ParseConfig(data)
}

// ParseConfig parses a configuration from YAML data.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty document gives the defaults
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	//
	return config, nil
}
