package circuit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/qsketch/qsketch/pkg/export/qcircuit"
)

// ErrConditionedLoop is returned when a classical condition is applied to
// a static loop; the export formats have no way to express that.
var ErrConditionedLoop = errors.New("classical conditions cannot be used with a static loop")

// Loop is a static loop: a composite body executed a fixed number of
// times. In diagrams, loops of more than two iterations draw one body,
// dots, and a final body under a bracket annotated with the iteration
// count; one and two iterations draw the body literally.
type Loop struct {
	label string
	count int
	body  *Composite
	desc  string
}

// NewLoop creates a static loop named label that executes body count
// times.
func NewLoop(label string, count int, body *Composite) *Loop {
	return &Loop{
		label: label,
		count: count,
		body:  body,
		desc:  fmt.Sprintf("%d(%s)", count, body.Description()),
	}
}

func (g *Loop) Description() string { return g.desc }
func (g *Loop) NumBits() int        { return g.body.NumBits() }

func (g *Loop) Draw(bits []int, st *qcircuit.State) error {
	switch {
	case g.count == 1:
		return g.body.Draw(bits, st)
	case g.count == 2:
		if err := g.body.Draw(bits, st); err != nil {
			return err
		}
		return qcircuit.DrawChecked(g.body, bits, st)
	case g.count > 2:
		first := slices.Min(bits)
		last := slices.Max(bits)

		st.StartLoop(g.count)
		if err := g.body.Draw(bits, st); err != nil {
			return err
		}
		st.AddDots(first, last-first, `\cdots`)
		if err := qcircuit.DrawChecked(g.body, bits, st); err != nil {
			return err
		}
		return st.EndLoop()
	}
	return nil
}

func (g *Loop) OpenQASM(bitNames []string, bits []int) (string, error) {
	if g.count == 0 {
		return "", nil
	}
	body, err := g.body.OpenQASM(bitNames, bits)
	if err != nil {
		return "", err
	}
	return strings.Join(slices.Repeat([]string{body}, g.count), ";\n"), nil
}

func (g *Loop) ConditionalOpenQASM(string, []string, []int) (string, error) {
	return "", ErrConditionedLoop
}

func (g *Loop) CQasm(bitNames []string, bits []int) (string, error) {
	body, err := g.body.CQasm(bitNames, bits)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(".%s(%d)\n%s\n.end", g.label, g.count, body), nil
}

func (g *Loop) ConditionalCQasm(string, []string, []int) (string, error) {
	return "", ErrConditionedLoop
}
