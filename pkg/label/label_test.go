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
package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Variance_00(t *testing.T) {
	assert.Equal(t, COVARIANT, COVARIANT.Compose(COVARIANT))
	assert.Equal(t, CONTRAVARIANT, COVARIANT.Compose(CONTRAVARIANT))
	assert.Equal(t, CONTRAVARIANT, CONTRAVARIANT.Compose(COVARIANT))
	assert.Equal(t, COVARIANT, CONTRAVARIANT.Compose(CONTRAVARIANT))
	assert.Equal(t, CONTRAVARIANT, COVARIANT.Flip())
	assert.Equal(t, COVARIANT, CONTRAVARIANT.Flip())
}

func Test_Variance_01(t *testing.T) {
	assert.Equal(t, CONTRAVARIANT, InLabel("0").Variance())
	assert.Equal(t, COVARIANT, OutLabel("0").Variance())
	assert.Equal(t, COVARIANT, DerefLabel(4, 0, NoBound()).Variance())
	assert.Equal(t, COVARIANT, LoadLabel().Variance())
	assert.Equal(t, CONTRAVARIANT, StoreLabel().Variance())
}

func Test_Variance_02(t *testing.T) {
	// in.store is covariant, whilst in.load is contravariant.
	assert.Equal(t, COVARIANT, PathVariance([]FieldLabel{InLabel("0"), StoreLabel()}))
	assert.Equal(t, CONTRAVARIANT, PathVariance([]FieldLabel{InLabel("0"), LoadLabel()}))
	assert.Equal(t, COVARIANT, PathVariance(nil))
}

func Test_FieldLabel_00(t *testing.T) {
	labels := []FieldLabel{
		InLabel("0"), OutLabel("eax"), LoadLabel(), StoreLabel(),
		DerefLabel(4, 0, NoBound()),
		DerefLabel(8, -16, Unbounded()),
		DerefLabel(1, 2, NullTerminated()),
		DerefLabel(2, 4, FixedBound(10)),
	}
	// Check round trip through parser
	for _, l := range labels {
		t.Run(l.String(), func(t *testing.T) {
			r, err := ParseFieldLabel(l.String())
			require.NoError(t, err)
			assert.Equal(t, 0, l.Cmp(r))
			assert.Equal(t, l.Hash(), r.Hash())
		})
	}
}

func Test_FieldLabel_01(t *testing.T) {
	for _, s := range []string{"", "in_", "loads", "σ4", "σ4@x", "σx@0", "σ4@0[", "σ4@0[x]", "field"} {
		_, err := ParseFieldLabel(s)
		assert.Error(t, err, s)
	}
}

func Test_FieldLabel_02(t *testing.T) {
	assert.Equal(t, "σ4@0", DerefLabel(4, 0, NoBound()).String())
	assert.Equal(t, "σ1@0[nullterm]", DerefLabel(1, 0, NullTerminated()).String())
	assert.Equal(t, "σ4@-8[*]", DerefLabel(4, -8, Unbounded()).String())
	assert.Equal(t, "σ4@8[3]", DerefLabel(4, 8, FixedBound(3)).String())
}

func Test_FieldLabel_03(t *testing.T) {
	// Ordering is total and antisymmetric across variants.
	labels := []FieldLabel{InLabel("a"), InLabel("b"), OutLabel("a"), DerefLabel(4, 0, NoBound()),
		DerefLabel(4, 4, NoBound()), LoadLabel(), StoreLabel()}
	//
	for i, l := range labels {
		for j, r := range labels {
			switch {
			case i < j:
				assert.Negative(t, l.Cmp(r), "%s < %s", l, r)
			case i > j:
				assert.Positive(t, l.Cmp(r), "%s > %s", l, r)
			default:
				assert.Zero(t, l.Cmp(r))
			}
		}
	}
}

func Test_EdgeLabel_00(t *testing.T) {
	assert.Equal(t, "1", One().String())
	assert.Equal(t, "recall_load", Recall(LoadLabel()).String())
	assert.Equal(t, "forget_σ4@0", Forget(DerefLabel(4, 0, NoBound())).String())
	assert.True(t, Recall(LoadLabel()).Equals(Recall(LoadLabel())))
	assert.False(t, Recall(LoadLabel()).Equals(Forget(LoadLabel())))
	assert.True(t, One().Equals(One()))
	assert.Equal(t, CONTRAVARIANT, Forget(StoreLabel()).Variance())
	assert.Panics(t, func() { One().Field() })
}
