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


// Package search provides semantic retrieval over the memory collection.
//
// The Searcher embeds a natural-language query with the same model used at
// ingestion time and asks the vector store for the nearest points. Typed
// results come back from FindSimilar; AnswerQuery wraps them as the plain
// text expected at the tool boundary, where errors are rendered as
// descriptive messages rather than returned.
package search
