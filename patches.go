package rtlweaver

import (
	"encoding/json"
	"sort"
	"strings"
)

// PatchSet maps region names to replacement code. A region absent from the
// set is left untouched — partial fulfillment is allowed, not an error.
type PatchSet map[string]string

// patchEntry mirrors one element of the provider's "edits" list. Pointer
// fields distinguish a missing key from an empty value.
type patchEntry struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// ParsePatchSet parses a raw provider response into a PatchSet. The response
// must be, or contain after stripping an optional fenced wrapper, a single
// JSON object whose "edits" field is a list of {name, code} entries. Any
// other shape is a *ProviderOutputError.
func ParsePatchSet(raw string) (PatchSet, error) {
	txt := StripFence(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(txt), &top); err != nil {
		return nil, NewProviderOutputError("response is not a JSON object: "+err.Error(), raw)
	}
	editsRaw, ok := top["edits"]
	if !ok {
		return nil, NewProviderOutputError(`response must carry a top-level "edits" list`, raw)
	}
	var entries []patchEntry
	if err := json.Unmarshal(editsRaw, &entries); err != nil {
		return nil, NewProviderOutputError(`"edits" must be a list of {name, code} objects: `+err.Error(), raw)
	}

	patches := make(PatchSet, len(entries))
	for _, e := range entries {
		if e.Name == nil || e.Code == nil {
			return nil, NewProviderOutputError(`every edit needs both "name" and "code"`, raw)
		}
		name := strings.TrimSpace(*e.Name)
		if name == "" {
			return nil, NewProviderOutputError("edit name cannot be empty", raw)
		}
		patches[name] = *e.Code // a repeated name keeps the last entry
	}
	return patches, nil
}

// ValidatePatches checks a parsed PatchSet against the scanned regions and
// the given validators, before any text is merged. Unknown region names are
// fatal; regions without a patch are fine.
func ValidatePatches(regions []EditRegion, patches PatchSet, validators []Validator) error {
	known := make(map[string]bool, len(regions))
	for _, r := range regions {
		known[r.Name] = true
	}

	names := make([]string, 0, len(patches))
	for name := range patches {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !known[name] {
			return &UnknownRegionError{Name: name}
		}
	}
	for _, name := range names {
		for _, v := range validators {
			if err := v.Validate(name, patches[name]); err != nil {
				return err
			}
		}
	}
	return nil
}
