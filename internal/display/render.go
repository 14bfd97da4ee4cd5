package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/autoreply/internal/observability"
)

// Render writes the overlay as a text box. A hidden overlay prints only its
// toast, if any.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func Render(w io.Writer, view View) {
	if !view.Visible() {
		if view.Toast != "" {
			fmt.Fprintln(w, view.Toast)
		}
		return
	}

	var sb strings.Builder
	switch view.Kind {
	case ViewStatus:
		sb.WriteString(view.Status)
	case ViewError:
		sb.WriteString("Error: " + view.Error)
	case ViewReplies:
		if view.Research != nil {
			sb.WriteString(observability.ResearchLines(*view.Research))
			sb.WriteString("\n\n")
		}
		if len(view.Replies) == 0 {
			sb.WriteString(view.Empty)
		}
		for i, reply := range view.Replies {
			sb.WriteString(fmt.Sprintf("[%d] %s", i+1, reply))
			if i < len(view.Replies)-1 {
				sb.WriteString("\n\n")
			}
		}
	}

	observability.Box(w, overlayTitle, sb.String())
}
