/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"math"
	"strconv"
	"strings"
)

// thresholds for switching to exponent notation
const (
	largeValueThreshold = 1e16
	smallValueThreshold = 1e-4
)

// SetHTTPPrefix adds HTTP prefix if it is not already present in the given string
func SetHTTPPrefix(url string) string {
	if url != "" && !strings.HasPrefix(url, "http") {
		// if no protocol is specified in given URL, assume it is not
		// needed to use https
		url = "http://" + url
	}
	return url
}

// FormatValue returns textual representation of computed value. Integral
// values keep the trailing ".0" (14 -> "14.0"), very large and very small
// values are displayed in exponent notation (1e+20).
func FormatValue(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}

	abs := math.Abs(value)
	if abs >= largeValueThreshold || (abs != 0 && abs < smallValueThreshold) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}

	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}
	return formatted
}
