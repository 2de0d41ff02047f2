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

package arrays

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMismatchIgnore(t *testing.T) {
	h := MismatchHandler{Policy: MismatchIgnore}
	assert.NoError(t, h.Handle(Columns, Rows, 0xdeadbeef))
}

func TestMismatchError(t *testing.T) {
	h := MismatchHandler{Policy: MismatchError}
	err := h.Handle(Columns, Rows, 0xdeadbeef)
	assert.ErrorIs(t, err, ErrInefficientAxis)
	assert.ErrorContains(t, err, "columns")
	assert.ErrorContains(t, err, "deadbeef")
}

func TestMismatchWarnLogs(t *testing.T) {
	var buf bytes.Buffer
	h := MismatchHandler{
		Policy: MismatchWarn,
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}

	assert.NoError(t, h.Handle(Columns, Rows, 0xdeadbeef))
	assert.Contains(t, buf.String(), "inefficient axis")
	assert.Contains(t, buf.String(), "requested=columns")
	assert.Contains(t, buf.String(), "efficient=rows")
}
