package rtlweaver

import "sort"

// NormalizeCode prepares provider code for insertion: one echoed-back outer
// fence is stripped and surrounding blank space trimmed. Internal formatting
// is preserved.
func NormalizeCode(code string) string {
	return StripFence(code)
}

// ApplyPatches merges a validated PatchSet into text. Regions are applied in
// descending start order so earlier offsets stay valid while later spans are
// materialized; each patch is inserted as a standalone block bounded by
// newlines. Regions without a patch keep their original text byte for byte.
func ApplyPatches(text string, regions []EditRegion, patches PatchSet) string {
	ordered := make([]EditRegion, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := text
	for _, r := range ordered {
		code, ok := patches[r.Name]
		if !ok {
			continue
		}
		out = out[:r.Start] + "\n" + NormalizeCode(code) + "\n" + out[r.End:]
	}
	return out
}
