package editor

import (
	"strings"

	"github.com/rowkit/vid/internal/logger"
)

// executeCommand runs the text typed after ':'. Supported commands are
// q, w, w <name> and wq; anything else is reported on the command line.
func (e *Editor) executeCommand(cmd string) {
	cmd = strings.TrimSpace(cmd)
	logger.Debug("executing command", "cmd", cmd)

	if cmd == "q" {
		e.mode = ModeExiting
		return
	}
	if strings.HasPrefix(cmd, "w") {
		e.saveCommand(cmd)
		return
	}
	e.setError("command not found", cmd)
	e.mode = ModeNavigate
}

func (e *Editor) saveCommand(cmd string) {
	path := e.buf.Filename()
	exit := false
	if len(cmd) > 1 {
		switch {
		case cmd == "wq":
			exit = true
		case cmd[1] == ' ':
			if name := strings.TrimSpace(cmd[2:]); name != "" {
				path = name
			}
		default:
			e.setError("invalid command syntax", cmd)
			e.mode = ModeNavigate
			return
		}
	}
	if path == "" {
		e.setError("no file name", cmd)
		e.mode = ModeNavigate
		return
	}
	if err := e.buf.SaveTo(path); err != nil {
		logger.Error("save failed", "path", path, "err", err)
		e.setError("failed to write file", cmd)
		e.mode = ModeNavigate
		return
	}
	e.buf.SetFilename(path)
	e.modified = false
	e.statusText = "file saved"
	logger.Info("file saved", "path", path, "rows", e.buf.Len())
	if exit {
		e.mode = ModeExiting
	} else {
		e.mode = ModeNavigate
	}
}

func (e *Editor) setError(msg, cmd string) {
	e.errorText = msg + ": '" + cmd + "'"
}
