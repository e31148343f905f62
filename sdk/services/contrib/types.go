// SPDX-FileCopyrightText: © 2021-2023 FINCONS GROUP AG
//
// SPDX-License-Identifier: Apache-2.0

package contrib

// Mode holds the four independent run switches.
type Mode struct {
	MinioStructure bool // mirror <user>/<object> locally instead of flattening
	Zip            bool // keep archives as downloaded, no extraction
	Overwrite      bool // replace existing local files
	CSV            bool // write manifests after materialization
}

// Policy is what the materialization routine actually consults.
type Policy struct {
	Extract      bool
	SkipExisting bool
}

func (m Mode) Policy() Policy {
	return Policy{
		Extract:      !m.Zip,
		SkipExisting: !m.Overwrite,
	}
}

type Action string

const (
	ActionDownloaded  Action = "downloaded"
	ActionExtracted   Action = "extracted"
	ActionOverwritten Action = "overwritten"
	ActionSkipped     Action = "skipped"
	ActionDirectory   Action = "directory"
)

type EntryResult struct {
	Name   string
	Action Action
}

type ObjectResult struct {
	Key     string
	Index   int // 1-based
	Total   int
	Action  Action
	Path    string
	Entries []EntryResult // only when extracting
}

type Report struct {
	Destination string
	Objects     []ObjectResult
}

// Count returns how many objects or entries ended with action a.
func (r *Report) Count(a Action) int {
	n := 0
	for _, o := range r.Objects {
		if o.Action == a {
			n++
		}
		for _, e := range o.Entries {
			if e.Action == a {
				n++
			}
		}
	}
	return n
}

type DownloadRequest struct {
	Criteria    Criteria
	Destination string
	Mode        Mode
	// ManifestDir receives the CSV manifests; "" means the working directory.
	ManifestDir string
}

type ManifestResult struct {
	FilteredPath string
	FilteredRows int
	TotalPath    string
	TotalRows    int
}

type RunResult struct {
	Selection Selection
	Report    *Report
	Manifests *ManifestResult
}
