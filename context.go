package rtlweaver

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultClockMHz applies when neither an explicit clock period nor
// spec.Sim.ClockMHz is given.
const DefaultClockMHz = 100.0

const defaultNumTransactions = 200

// Context carries the deterministic facts derived from a Spec and handed to
// the provider. All numeric conversion happens here, locally — the provider
// is never asked to do arithmetic. Built once per Apply, never mutated.
type Context struct {
	ControllerType  string           `json:"controller_type"`
	Protocol        string           `json:"protocol"`
	DataWidth       int              `json:"data_width"`
	AddrWidth       int              `json:"addr_width"`
	Endian          string           `json:"endian"`
	Features        map[string]any   `json:"features"`
	AddressMap      []map[string]any `json:"address_map"`
	Sim             SimParams        `json:"sim"`
	TimingNS        map[string]any   `json:"timing_ns"`
	ClockNS         float64          `json:"clk_ns"`
	TimingCycles    map[string]int   `json:"timing_cycles"`
	NumTransactions int              `json:"num_transactions"`
	ByteEnableWidth int              `json:"byte_enable_width"`
}

// BuildContext derives a Context from spec. clockNS overrides the clock
// period when positive; otherwise the period is 1000/spec.Sim.ClockMHz
// (DefaultClockMHz when unset). Pure function: no I/O, no randomness.
//
// Cycle counts always round up — rounding down would silently violate a
// timing minimum in the generated design.
func BuildContext(spec *Spec, clockNS float64) *Context {
	if spec == nil {
		spec = &Spec{}
	}

	ctx := &Context{
		ControllerType: spec.ControllerType,
		Protocol:       spec.Protocol,
		DataWidth:      spec.DataWidth,
		AddrWidth:      spec.AddrWidth,
		Endian:         spec.Endian,
		Features:       spec.Features,
		AddressMap:     spec.AddressMap,
		Sim:            spec.Sim,
		TimingNS:       spec.Timing,
	}
	if ctx.Features == nil {
		ctx.Features = map[string]any{}
	}
	if ctx.AddressMap == nil {
		ctx.AddressMap = []map[string]any{}
	}
	if ctx.TimingNS == nil {
		ctx.TimingNS = map[string]any{}
	}

	if clockNS <= 0 {
		mhz := spec.Sim.ClockMHz
		if mhz <= 0 {
			mhz = DefaultClockMHz
		}
		clockNS = 1000.0 / mhz
	}
	ctx.ClockNS = clockNS

	ctx.TimingCycles = make(map[string]int, len(spec.Timing))
	for key, val := range spec.Timing {
		ns, ok := toFloat(val)
		if !ok {
			continue // malformed entries degrade gracefully
		}
		name := strings.ReplaceAll(key, "_ns", "_cycles")
		ctx.TimingCycles[name] = int(math.Ceil(ns / clockNS))
	}

	ctx.NumTransactions = spec.Sim.NumTransactions
	if ctx.NumTransactions <= 0 {
		ctx.NumTransactions = defaultNumTransactions
	}

	dw := spec.DataWidth
	if dw <= 0 {
		dw = 8
	}
	ctx.ByteEnableWidth = dw / 8
	if ctx.ByteEnableWidth < 1 {
		ctx.ByteEnableWidth = 1
	}

	return ctx
}

// toFloat coerces the value encodings a decoded spec sheet may carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
