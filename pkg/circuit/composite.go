package circuit

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

// Parse errors for composite gate description strings.
var (
	// ErrUnknownGate means a subgate name is not in the gate table.
	ErrUnknownGate = errors.New("unknown gate")
	// ErrNoGateName means no gate name was found where one was expected.
	ErrNoGateName = errors.New("no gate name found")
	// ErrInvalidArgCount means a subgate got the wrong number of arguments.
	ErrInvalidArgCount = errors.New("invalid number of arguments")
	// ErrInvalidBitCount means a subgate got the wrong number of bits.
	ErrInvalidBitCount = errors.New("invalid number of bits")
	// ErrInvalidArgument means a gate argument could not be parsed.
	ErrInvalidArgument = errors.New("invalid gate argument")
	// ErrNoBits means a subgate description names no bits to operate on.
	ErrNoBits = errors.New("no bits for gate")
	// ErrTrailingText means unparsed text follows a subgate description.
	ErrTrailingText = errors.New("trailing text after gate description")
)

// subGate is one component operation of a composite gate.
type subGate struct {
	gate Gate
	bits []int // bit positions within the composite's own bit space
}

// Composite is a user-defined gate made out of a sequence of more
// primitive gates. Build one with [NewComposite] and [Composite.AddGate],
// or parse a description string with [ParseComposite].
type Composite struct {
	name   string
	nrBits int
	ops    []subGate
}

// NewComposite creates an empty composite gate with the given name,
// operating on nrBits qubits.
func NewComposite(name string, nrBits int) *Composite {
	return &Composite{name: name, nrBits: nrBits}
}

// AddGate appends gate, operating on the composite-relative bit positions
// in bits, to the component sequence.
func (g *Composite) AddGate(gate Gate, bits ...int) {
	g.ops = append(g.ops, subGate{gate: gate, bits: slices.Clone(bits)})
}

func (g *Composite) Description() string { return g.name }
func (g *Composite) NumBits() int        { return g.nrBits }

// Draw draws the composite either expanded into its components or as a
// single multi-bit box, depending on the state's expand setting.
func (g *Composite) Draw(bits []int, st *qcircuit.State) error {
	if st.ExpandComposite() {
		for _, op := range g.ops {
			mapped := make([]int, len(op.bits))
			for i, b := range op.bits {
				mapped[i] = bits[b]
			}
			drawer, ok := op.gate.(qcircuit.Drawer)
			if !ok {
				return fmt.Errorf("gate %s: %w", op.gate.Description(), ErrNotExportable)
			}
			if err := qcircuit.DrawChecked(drawer, mapped, st); err != nil {
				return err
			}
		}
		return nil
	}

	first := slices.Min(bits)
	for _, bit := range bits {
		if bit == first {
			st.SetField(bit, fmt.Sprintf(`\multigate{%d}{%s}`, g.nrBits-1, g.name))
		} else {
			st.SetField(bit, fmt.Sprintf(`\ghost{%s}`, g.name))
		}
	}
	return nil
}

// DrawChecked reserves the full bit range when the composite draws as a
// single box; expanded components check their own placement.
func (g *Composite) DrawChecked(bits []int, st *qcircuit.State) error {
	if !st.ExpandComposite() {
		st.ReserveRange(bits, nil)
		if err := g.Draw(bits, st); err != nil {
			return err
		}
		st.ClaimRange(bits, nil)
		return nil
	}
	return g.Draw(bits, st)
}

func (g *Composite) OpenQASM(bitNames []string, bits []int) (string, error) {
	instrs, err := g.componentQASM(bits, func(sub Gate, mapped []int) (string, error) {
		q, ok := sub.(OpenQASMer)
		if !ok {
			return "", fmt.Errorf("gate %s: %w", sub.Description(), ErrNotExportable)
		}
		return q.OpenQASM(bitNames, mapped)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(instrs, "; "), nil
}

func (g *Composite) ConditionalOpenQASM(condition string, bitNames []string, bits []int) (string, error) {
	instrs, err := g.componentQASM(bits, func(sub Gate, mapped []int) (string, error) {
		return conditionalOpenQASM(sub, condition, bitNames, mapped)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(instrs, "; "), nil
}

func (g *Composite) CQasm(bitNames []string, bits []int) (string, error) {
	instrs, err := g.componentQASM(bits, func(sub Gate, mapped []int) (string, error) {
		q, ok := sub.(CQasmer)
		if !ok {
			return "", fmt.Errorf("gate %s: %w", sub.Description(), ErrNotExportable)
		}
		return q.CQasm(bitNames, mapped)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(instrs, "\n"), nil
}

func (g *Composite) ConditionalCQasm(condition string, bitNames []string, bits []int) (string, error) {
	instrs, err := g.componentQASM(bits, func(sub Gate, mapped []int) (string, error) {
		return conditionalCQasm(sub, condition, bitNames, mapped)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(instrs, "\n"), nil
}

// componentQASM emits each component with its bits mapped into the
// caller's bit space.
func (g *Composite) componentQASM(bits []int, emit func(Gate, []int) (string, error)) ([]string, error) {
	instrs := make([]string, 0, len(g.ops))
	for _, op := range g.ops {
		mapped := make([]int, len(op.bits))
		for i, b := range op.bits {
			mapped[i] = bits[b]
		}
		instr, err := emit(op.gate, mapped)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

// =============================================================================
// Description string parser
// =============================================================================

var (
	gateNameRe = regexp.MustCompile(`(?i)^\s*([a-z][a-z0-9]*)`)
	gateArgsRe = regexp.MustCompile(`^\s*\(\s*([^)]*?)\s*\)`)
	gateBitRe  = regexp.MustCompile(`^\s*(\d+)`)
)

// subGateDesc is the parsed form of one subgate description.
type subGateDesc struct {
	name string
	args []float64
	bits []int
}

// ParseComposite creates a composite gate with the given name from a
// description string. The description is one or more subgate descriptions
// separated by semicolons; each subgate is a gate name, optionally
// followed by a parenthesized comma-separated argument list, followed by
// the whitespace-separated bit numbers it operates on:
//
//	H 1; CX 0 1; H 1
//	RY(4.7124) 1; CX 1 0; RY(1.5708) 1; X 1
//
// The number of bits of the resulting gate is one more than the highest
// bit number used.
func ParseComposite(name, desc string) (*Composite, error) {
	var parsed []subGateDesc
	maxBit := 0
	for part := range strings.SplitSeq(desc, ";") {
		sub, err := parseSubGate(part)
		if err != nil {
			return nil, err
		}
		maxBit = max(maxBit, slices.Max(sub.bits))
		parsed = append(parsed, sub)
	}

	g := NewComposite(name, maxBit+1)
	for _, sub := range parsed {
		gate, err := buildGate(sub)
		if err != nil {
			return nil, err
		}
		g.AddGate(gate, sub.bits...)
	}
	return g, nil
}

func parseSubGate(desc string) (subGateDesc, error) {
	name, rest, err := parseGateName(desc)
	if err != nil {
		return subGateDesc{}, err
	}
	args, rest, err := parseGateArgs(rest)
	if err != nil {
		return subGateDesc{}, err
	}
	bits, rest, err := parseGateBits(rest, name)
	if err != nil {
		return subGateDesc{}, err
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		return subGateDesc{}, fmt.Errorf("%w: %q", ErrTrailingText, rest)
	}
	return subGateDesc{name: name, args: args, bits: bits}, nil
}

func parseGateName(desc string) (name, rest string, err error) {
	m := gateNameRe.FindStringSubmatchIndex(desc)
	if m == nil {
		return "", "", fmt.Errorf("%w in %q", ErrNoGateName, desc)
	}
	return desc[m[2]:m[3]], desc[m[3]:], nil
}

func parseGateArgs(desc string) (args []float64, rest string, err error) {
	m := gateArgsRe.FindStringSubmatchIndex(desc)
	if m == nil {
		return nil, desc, nil
	}
	for arg := range strings.SplitSeq(desc[m[2]:m[3]], ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrInvalidArgument, strings.TrimSpace(arg))
		}
		args = append(args, v)
	}
	return args, desc[m[1]:], nil
}

func parseGateBits(desc, name string) (bits []int, rest string, err error) {
	rest = desc
	for {
		m := gateBitRe.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		bit, err := strconv.Atoi(rest[m[2]:m[3]])
		if err != nil {
			return nil, "", fmt.Errorf("%w: %q", ErrInvalidArgument, rest[m[2]:m[3]])
		}
		bits = append(bits, bit)
		rest = rest[m[1]:]
	}
	if len(bits) == 0 {
		return nil, "", fmt.Errorf("%w %q", ErrNoBits, name)
	}
	return bits, rest, nil
}

// gateSpec describes one entry of the gate table: expected argument and
// bit counts, and a factory from the parsed arguments.
type gateSpec struct {
	nrArgs int
	nrBits int
	build  func(args []float64) Gate
}

var gateTable = map[string]gateSpec{
	"ccx":  {0, 3, func([]float64) Gate { return NewCCX() }},
	"ccz":  {0, 3, func([]float64) Gate { return NewCCZ() }},
	"ch":   {0, 2, func([]float64) Gate { return NewControlled(NewH()) }},
	"crx":  {1, 2, func(a []float64) Gate { return NewControlled(NewRX(a[0])) }},
	"cry":  {1, 2, func(a []float64) Gate { return NewControlled(NewRY(a[0])) }},
	"crz":  {1, 2, func(a []float64) Gate { return NewControlled(NewRZ(a[0])) }},
	"cs":   {0, 2, func([]float64) Gate { return NewControlled(NewS()) }},
	"csdg": {0, 2, func([]float64) Gate { return NewControlled(NewSdg()) }},
	"ct":   {0, 2, func([]float64) Gate { return NewControlled(NewT()) }},
	"ctdg": {0, 2, func([]float64) Gate { return NewControlled(NewTdg()) }},
	"cx":   {0, 2, func([]float64) Gate { return NewCX() }},
	"cy":   {0, 2, func([]float64) Gate { return NewCY() }},
	"cz":   {0, 2, func([]float64) Gate { return NewCZ() }},
	"h":    {0, 1, func([]float64) Gate { return NewH() }},
	"rx":   {1, 1, func(a []float64) Gate { return NewRX(a[0]) }},
	"ry":   {1, 1, func(a []float64) Gate { return NewRY(a[0]) }},
	"rz":   {1, 1, func(a []float64) Gate { return NewRZ(a[0]) }},
	"s":    {0, 1, func([]float64) Gate { return NewS() }},
	"sdg":  {0, 1, func([]float64) Gate { return NewSdg() }},
	"swap": {0, 2, func([]float64) Gate { return NewSwap() }},
	"t":    {0, 1, func([]float64) Gate { return NewT() }},
	"tdg":  {0, 1, func([]float64) Gate { return NewTdg() }},
	"u1":   {1, 1, func(a []float64) Gate { return NewU1(a[0]) }},
	"x":    {0, 1, func([]float64) Gate { return NewX() }},
	"y":    {0, 1, func([]float64) Gate { return NewY() }},
	"z":    {0, 1, func([]float64) Gate { return NewZ() }},
}

// NewGate creates a gate from its table name ("h", "cx", "rx", ...) and
// argument list. Gate names are case insensitive.
func NewGate(name string, args []float64) (Gate, error) {
	spec, ok := gateTable[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGate, name)
	}
	if len(args) != spec.nrArgs {
		return nil, fmt.Errorf("%w for %q gate", ErrInvalidArgCount, name)
	}
	return spec.build(args), nil
}

func buildGate(sub subGateDesc) (Gate, error) {
	gate, err := NewGate(sub.name, sub.args)
	if err != nil {
		return nil, err
	}
	if len(sub.bits) != gate.NumBits() {
		return nil, fmt.Errorf("%w for %q gate", ErrInvalidBitCount, sub.name)
	}
	return gate, nil
}

// GateInfo describes one entry of the builtin gate table.
type GateInfo struct {
	Name    string
	NumArgs int
	NumBits int
}

// Gates lists the builtin gate table in alphabetical order.
func Gates() []GateInfo {
	infos := make([]GateInfo, 0, len(gateTable))
	for name, spec := range gateTable {
		infos = append(infos, GateInfo{Name: name, NumArgs: spec.nrArgs, NumBits: spec.nrBits})
	}
	slices.SortFunc(infos, func(a, b GateInfo) int { return strings.Compare(a.Name, b.Name) })
	return infos
}
