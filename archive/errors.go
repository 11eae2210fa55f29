// Copyright 2025 The Codex Authors
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


package archive

import "errors"

var (
	// ErrUnreadableSession indicates a session file that could not be
	// read or decoded. Callers skip the file rather than abort the run.
	ErrUnreadableSession = errors.New("unreadable session file")

	// ErrNoSessionFiles indicates a scan that matched nothing under the
	// archive root.
	ErrNoSessionFiles = errors.New("no session files found")
)
