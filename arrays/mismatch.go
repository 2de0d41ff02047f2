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
	"errors"
	"fmt"
	"log/slog"
)

// ErrInefficientAxis is returned by a MismatchError handler when an
// operation iterates a matrix along its non-contiguous axis.
var ErrInefficientAxis = errors.New("iterating matrix along its inefficient axis")

// MismatchPolicy selects how an inefficient-axis advisory is handled.
// The advisory concerns performance only; under MismatchIgnore and
// MismatchWarn the operation proceeds and produces correct results.
type MismatchPolicy int

const (
	MismatchWarn MismatchPolicy = iota
	MismatchIgnore
	MismatchError
)

func (p MismatchPolicy) String() string {
	switch p {
	case MismatchWarn:
		return "warn"
	case MismatchIgnore:
		return "ignore"
	case MismatchError:
		return "error"
	}
	return fmt.Sprintf("mismatch-policy(%d)", int(p))
}

// MismatchHandler carries an advisory policy and the logger used when
// the policy is MismatchWarn. The zero value warns through
// slog.Default.
type MismatchHandler struct {
	Policy MismatchPolicy
	Logger *slog.Logger
}

// Handle reports that an operation requested iteration along requested
// while the matrix identified by fingerprint is contiguous along
// efficient. Returns a non-nil error only under MismatchError.
func (h MismatchHandler) Handle(requested, efficient Axis, fingerprint uint64) error {
	switch h.Policy {
	case MismatchIgnore:
		return nil
	case MismatchError:
		return fmt.Errorf("%w: requested %s but matrix %016x is contiguous along %s",
			ErrInefficientAxis, requested, fingerprint, efficient)
	default:
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("iterating matrix along its inefficient axis",
			slog.String("requested", requested.String()),
			slog.String("efficient", efficient.String()),
			slog.String("matrix", fmt.Sprintf("%016x", fingerprint)),
		)
		return nil
	}
}
