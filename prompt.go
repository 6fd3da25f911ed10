package rtlweaver

import "encoding/json"

// The system instruction pins the provider to the edit contract: fill the
// marked regions only, answer in strict JSON.
const systemPrompt = `You are a senior verification engineer. You receive a SystemVerilog testbench template and a JSON spec context. Your ONLY job is to produce code for the marked @LLM_EDIT regions. Do not change module ports, imports, or any code outside those regions. Return STRICT JSON only, no prose. JSON schema:
{ "edits": [ {"name": "<REGION_NAME>", "code": "<raw SystemVerilog to insert>"} ] }
Notes:
- Keep code Verilator/icarus-compatible (SystemVerilog-2012 subset).
- Use integers for timing cycles already computed for you in 'timing_cycles'.
- Do not introduce file I/O, DPI, or non-determinism.`

// snippetRadius is how many bytes of surrounding template each region's
// prompt snippet includes on either side.
const snippetRadius = 300

type regionPayload struct {
	Name           string     `json:"name"`
	Kind           RegionKind `json:"kind"`
	ContextSnippet string     `json:"context_snippet"`
}

type userPayload struct {
	TemplateOverview string                         `json:"template_overview"`
	Regions          []regionPayload                `json:"regions"`
	SpecContext      *Context                       `json:"spec_context"`
	Tasks            []string                       `json:"tasks"`
	ReturnFormat     map[string][]map[string]string `json:"return_format"`
}

var baseTasks = []string{
	"Fill timing constants/variables using 'timing_cycles' (already integer).",
	"Generate legal stimulus honoring protocol and timing cycles.",
	"If filling tasks (e.g., do_write/do_read), keep interfaces unchanged.",
	"Ensure endianness and byte-enable (be) handling are correct.",
	"Use $fatal on mismatches; do not print RESULT here unless the region is specifically for results.",
}

// buildUserPrompt composes the compact, machine-friendly JSON payload the
// provider sees: per-region template snippets, the derived spec context, and
// the task list.
func buildUserPrompt(template string, regions []EditRegion, ctx *Context, extraTasks []string) (string, error) {
	rp := make([]regionPayload, 0, len(regions))
	for _, r := range regions {
		lo := max(0, r.Start-snippetRadius)
		hi := min(len(template), r.End+snippetRadius)
		rp = append(rp, regionPayload{
			Name:           r.Name,
			Kind:           r.Kind,
			ContextSnippet: template[lo:hi],
		})
	}

	tasks := make([]string, 0, len(baseTasks)+len(extraTasks))
	tasks = append(tasks, baseTasks...)
	tasks = append(tasks, extraTasks...)

	payload := userPayload{
		TemplateOverview: "SystemVerilog testbench with guarded @LLM_EDIT regions.",
		Regions:          rp,
		SpecContext:      ctx,
		Tasks:            tasks,
		ReturnFormat: map[string][]map[string]string{
			"edits": {{"name": "<REGION_NAME>", "code": "<SystemVerilog snippet>"}},
		},
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
