package internals

import "fmt"

// Policy is a per-directory rule describing how duplicates found under
// that directory should be treated. Each policy carries a fixed priority
// weight used to pick a winner among competing directories.
type Policy string

const (
	// PolicyKeep never removes anything; a KEEP directory always wins.
	PolicyKeep Policy = "keep"
	// PolicyPrompt currently degrades to KEEP (interactive confirmation
	// is out of scope); kept as a distinct value so configs written
	// against the original tool still load.
	PolicyPrompt Policy = "prompt"
	// PolicyHardlink currently degrades to KEEP (hardlinking is stubbed).
	PolicyHardlink Policy = "hardlink"
	// PolicyTrash moves losing duplicates to the trash.
	PolicyTrash Policy = "trash"
	// PolicyDelete unlinks losing duplicates.
	PolicyDelete Policy = "delete"
	// PolicyDiscard trashes the file unconditionally, even without a
	// duplicate elsewhere.
	PolicyDiscard Policy = "discard!"
	// PolicyErase deletes the file unconditionally, even without a
	// duplicate elsewhere.
	PolicyErase Policy = "erase!"
	// PolicyNoAction leaves the file alone and never contests a winner.
	PolicyNoAction Policy = "noaction"
)

var policyPriority = map[Policy]int{
	PolicyKeep:     100,
	PolicyPrompt:   75,
	PolicyHardlink: 50,
	PolicyTrash:    40,
	PolicyDelete:   30,
	PolicyDiscard:  20,
	PolicyErase:    10,
	PolicyNoAction: 0,
}

// Priority returns this policy's fixed priority weight. Unknown policies
// (which ParsePolicy would already have rejected) return -1.
func (p Policy) Priority() int {
	if prio, ok := policyPriority[p]; ok {
		return prio
	}
	return -1
}

// ParsePolicy validates a configuration string against the set of known
// policy names.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if _, ok := policyPriority[p]; !ok {
		return "", fmt.Errorf("unknown directory policy: %s", s)
	}
	return p, nil
}
