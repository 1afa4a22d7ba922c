// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// SpinnerCharSet is the index of the spinner.CharSets entry used.
const SpinnerCharSet = 31

var (
	spinnerMu sync.Mutex
	working   *spinner.Spinner
)

// StartSpinner shows the ~working~ spinner on standard error. It does
// nothing when standard error is not a terminal or a spinner is running.
func StartSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if working != nil || !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}

	working = spinner.New(
		spinner.CharSets[SpinnerCharSet], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr),
	)
	working.Start()
}

// PauseSpinner stops the spinner started by StartSpinner, if any.
func PauseSpinner() {
	spinnerMu.Lock()
	defer spinnerMu.Unlock()

	if working != nil {
		working.Stop()
		working = nil
	}
}
