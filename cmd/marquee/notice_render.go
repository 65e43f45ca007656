// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tomtom215/marquee/internal/notice"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func renderNotice(n notice.Notice, colorize bool) string {
	line := fmt.Sprintf("[%s] %s", levelLabel(n.Level), n.Message)
	if colorize {
		if color := levelColor(n.Level); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func writeNotices(w io.Writer, notices []notice.Notice) {
	colorize := shouldColorize(w)
	for _, n := range notices {
		fmt.Fprintln(w, renderNotice(n, colorize))
	}
}

func levelLabel(level notice.Level) string {
	switch level {
	case notice.LevelError:
		return "ERROR"
	case notice.LevelWarning:
		return "WARN"
	default:
		return "INFO"
	}
}

func levelColor(level notice.Level) string {
	switch level {
	case notice.LevelError:
		return ansiRed
	case notice.LevelWarning:
		return ansiYellow
	case notice.LevelInfo:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
