// Copyright 2026 cloudygreybeard
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

package bookmark

import "strings"

// Search returns the nodes whose title or URL contains query,
// case-insensitively, optionally restricted to a folder's subtree.
func (t *Tree) Search(query, folderID string) ([]Node, error) {
	nodes, err := t.List(folderID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	result := []Node{}
	for _, n := range nodes {
		if Matches(n, q) {
			result = append(result, n)
		}
	}
	return result, nil
}

// Matches reports whether the node's title or URL contains the lowercase
// query.
func Matches(n Node, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(n.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(n.URL), lowerQuery)
}
