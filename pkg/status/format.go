// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const actionWidth = 10 // actions are right aligned in this many columns

// 🖌️ Style returns the color used to print an action
func Style(a Action) *color.Color {
	switch a {
	case ActionCreate:
		return color.New(color.FgGreen, color.Bold)
	case ActionIdentical:
		return color.New(color.FgCyan)
	case ActionSkip, ActionForce:
		return color.New(color.FgYellow, color.Bold)
	case ActionConflict:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Reset)
	}
}

// 🎯 FormatEvent formats an event as `    create  path/to/file`
func FormatEvent(ev Event) string {
	return FormatLine(ev.Action.String(), ev.Path, Style(ev.Action))
}

// FormatLine right aligns word and colors it with style
func FormatLine(word, msg string, style *color.Color) string {
	pad := ""
	if n := actionWidth - len(word); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	return fmt.Sprintf("%s%s  %s", pad, style.Sprint(word), msg)
}
