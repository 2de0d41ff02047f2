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

package common

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// describeMaxElements bounds how many leading elements Describe spells out.
const describeMaxElements = 8

// Describe returns a brief human-readable summary of a count slice,
// intended for error messages: length, total, and a truncated prefix of
// the values. It never allocates proportionally to len(values) beyond
// the fixed prefix.
func Describe[C constraints.Integer](values []C) string {
	var total int64
	for _, v := range values {
		total += int64(v)
	}

	var sb strings.Builder
	sb.WriteString("counts(len=")
	sb.WriteString(strconv.Itoa(len(values)))
	sb.WriteString(" total=")
	sb.WriteString(strconv.FormatInt(total, 10))
	sb.WriteString(" [")
	for i, v := range values {
		if i == describeMaxElements {
			sb.WriteString(" ...")
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	sb.WriteString("])")
	return sb.String()
}
