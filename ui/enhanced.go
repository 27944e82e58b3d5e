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
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// colors used by enhanced UI
const (
	inputColor  = lipgloss.Color("2")
	outputColor = lipgloss.Color("1")
)

// EnhancedUI is an implementation of Controller interface that numbers
// inputs and outputs and uses colors when output is a terminal
type EnhancedUI struct {
	reader   *bufio.Reader
	writer   io.Writer
	inputNum int

	inputStyle        lipgloss.Style
	inputNumberStyle  lipgloss.Style
	outputStyle       lipgloss.Style
	outputNumberStyle lipgloss.Style
}

// NewEnhancedUI constructs new enhanced front end reading from in and
// writing to out. Colors are used only if out supports them.
func NewEnhancedUI(in io.Reader, out io.Writer) *EnhancedUI {
	renderer := lipgloss.NewRenderer(out)

	return &EnhancedUI{
		reader:            bufio.NewReader(in),
		writer:            out,
		inputStyle:        renderer.NewStyle().Foreground(inputColor),
		inputNumberStyle:  renderer.NewStyle().Foreground(inputColor).Bold(true),
		outputStyle:       renderer.NewStyle().Foreground(outputColor),
		outputNumberStyle: renderer.NewStyle().Foreground(outputColor).Bold(true),
	}
}

// InputNumber returns number of inputs read so far
func (e *EnhancedUI) InputNumber() int {
	return e.inputNum
}

// Input displays numbered prompt and reads one line
func (e *EnhancedUI) Input() (string, error) {
	e.inputNum++
	number := strconv.Itoa(e.inputNum)

	fmt.Fprint(e.writer, "\n"+
		e.inputStyle.Render("In  [")+
		e.inputNumberStyle.Render(number)+
		e.inputStyle.Render("]: "))

	return readLine(e.reader)
}

// Display prints the value prefixed by output number of the last input.
// The prefix is omitted when options.Raw is set.
func (e *EnhancedUI) Display(value interface{}, options *DisplayOptions) {
	if options == nil || !options.Raw {
		number := strconv.Itoa(e.inputNum)
		fmt.Fprint(e.writer,
			e.outputStyle.Render("Out [")+
				e.outputNumberStyle.Render(number)+
				e.outputStyle.Render("]: "))
	}
	fmt.Fprintln(e.writer, value)
}
