package hammer

import (
	"fmt"
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

// Disassemble decodes emitted machine code into GNU-syntax assembly, one
// instruction per line. Debug aid for inspecting what Emit produced.
func Disassemble(code []byte) ([]string, error) {
	var out []string

	for pc := 0; pc < len(code); {
		inst, err := x86asm.Decode(code[pc:], 64)
		if err != nil {
			return out, fmt.Errorf("%w: undecodable byte sequence at +%#x: %v", ErrJitFailed, pc, err)
		}

		out = append(out, fmt.Sprintf("%#6x: %s", pc, x86asm.GNUSyntax(inst, uint64(pc), nil)))
		pc += inst.Len
	}

	return out, nil
}

// DumpLoop returns a compact preview of the emitted function: the first and
// last instructions around an elided middle.
func (j *Jitter) DumpLoop(max int) string {
	if j.code == nil {
		return "<no function emitted>"
	}

	lines, err := Disassemble(j.code)
	if err != nil && len(lines) == 0 {
		return err.Error()
	}

	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}

	head := lines[:max/2]
	tail := lines[len(lines)-max/2:]

	return strings.Join(head, "\n") + fmt.Sprintf("\n... %d instructions elided ...\n", len(lines)-len(head)-len(tail)) +
		strings.Join(tail, "\n")
}
