/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/twmb/murmur3"
)

const seedMixSeed = uint64(9001)

// MixSeed folds a base seed and an iteration index into a single
// generator seed. Murmur3 mixing keeps the per-index streams
// decorrelated even though the inputs differ in only a few bits.
func MixSeed(base int64, index int) int64 {
	var scratch [16]byte
	binary.LittleEndian.PutUint64(scratch[:8], uint64(base))
	binary.LittleEndian.PutUint64(scratch[8:], uint64(index))
	return int64(murmur3.SeedSum64(seedMixSeed, scratch[:]))
}

// The fallback stream is the single ambient source used when a caller
// supplies neither a seed nor a generator. It is private to this module
// so unrelated use of the global math/rand source cannot perturb it.
var (
	fallbackMu sync.Mutex
	fallback   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// FallbackInt63 draws one value from the module's ambient fallback
// stream. Safe for concurrent use.
func FallbackInt63() int64 {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	return fallback.Int63()
}
