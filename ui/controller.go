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

// Package ui contains front ends used by the interpreter to read expressions
// from user and to display results. Two interchangeable implementations of
// the Controller interface exist: BasicUI and EnhancedUI.
package ui

import (
	"bufio"
	"io"
	"strings"
)

// DisplayOptions configures how a value is displayed. The meaning of
// options depends on Controller implementation.
type DisplayOptions struct {
	// Raw suppresses any decoration around displayed value
	Raw bool
}

// Controller represents any front end
type Controller interface {
	// Input retrieves one line entered by user. io.EOF is returned when
	// there is no more input.
	Input() (string, error)

	// Display displays a value to the user
	Display(value interface{}, options *DisplayOptions)
}

// readLine reads one line from reader without the line terminator. Last
// line without terminator is returned as well, io.EOF is returned only when
// nothing has been read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
