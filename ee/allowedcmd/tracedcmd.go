package allowedcmd

import (
	"context"
	"fmt"
	"os/exec"

	"go.opencensus.io/trace"
)

type TracedCmd struct {
	Ctx context.Context // nolint:containedctx // This is an approved usage of context for short lived cmd
	*exec.Cmd
}

func (t *TracedCmd) startSpan() *trace.Span {
	_, span := trace.StartSpan(t.Ctx, "allowedcmd.Run")
	span.AddAttributes(
		trace.StringAttribute("path", t.Path),
		trace.StringAttribute("args", fmt.Sprintf("%+v", t.Args)),
	)
	return span
}

func (t *TracedCmd) String() string {
	return fmt.Sprintf("%+v", t.Args)
}

// Output overrides the Output method to add tracing before capturing output.
func (t *TracedCmd) Output() ([]byte, error) {
	span := t.startSpan()
	defer span.End()

	return t.Cmd.Output() //nolint:forbidigo // This is our approved usage of t.Cmd.Output()
}

// CombinedOutput overrides the CombinedOutput method to add tracing before capturing combined output.
func (t *TracedCmd) CombinedOutput() ([]byte, error) {
	span := t.startSpan()
	defer span.End()

	return t.Cmd.CombinedOutput() //nolint:forbidigo // This is our approved usage of t.Cmd.CombinedOutput()
}
