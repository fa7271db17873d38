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

package entropy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned before any computation starts when m, r,
	// the sequence length, sample_size or sample_num are out of range.
	ErrInvalidParameter = errors.New("sampen: invalid parameter")

	// ErrResourceExhausted is returned when an index or a sample draw would
	// exceed the configured memory limit or the addressable point range.
	ErrResourceExhausted = errors.New("sampen: resource exhausted")
)

// InvalidParameter builds an error wrapping ErrInvalidParameter.
func InvalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ResourceExhausted builds an error wrapping ErrResourceExhausted.
func ResourceExhausted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResourceExhausted, fmt.Sprintf(format, args...))
}
