package engine

import "fmt"

// Abort codes. The zero code means "no error" and is never raised.
const (
	codeInput     = 1
	codeSingular  = 2
	codePrecision = 3
	codeMemory    = 4
	codeInternal  = 5
	codeOther     = 6
	codeTopology  = 7
	codeWide      = 8
	codeDebug     = 9
)

// Fault is the panic value the engine aborts with. It carries only the
// abort code; the human-readable message is written to the State's error
// destination before the jump, exactly once per abort.
type Fault struct {
	Code int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("engine fault: code %d", f.Code)
}

// errexit writes the diagnostic message and performs the non-local exit.
// It never returns.
func (st *State) errexit(code int, format string, args ...any) {
	fmt.Fprintf(st.errOut, format+"\n", args...)
	panic(&Fault{Code: code})
}
