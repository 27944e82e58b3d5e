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

package ui

import (
	"bufio"
	"fmt"
	"io"
)

const basicPrompt = ">>> "

// BasicUI is an implementation of Controller interface that uses plain text
// only
type BasicUI struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewBasicUI constructs new basic front end reading from in and writing to
// out
func NewBasicUI(in io.Reader, out io.Writer) *BasicUI {
	return &BasicUI{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

// Input displays prompt and reads one line
func (b *BasicUI) Input() (string, error) {
	fmt.Fprint(b.writer, basicPrompt)
	return readLine(b.reader)
}

// Display prints the value on its own line, options are ignored
func (b *BasicUI) Display(value interface{}, options *DisplayOptions) {
	fmt.Fprintln(b.writer, value)
}
