package tui

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// TerminalImageProtocol represents the image protocol supported by the terminal
type TerminalImageProtocol int

// Terminal image protocol types
const (
	// ProtocolNone indicates no image protocol support
	ProtocolNone TerminalImageProtocol = iota
	// ProtocolKitty indicates Kitty terminal graphics protocol
	ProtocolKitty
	// ProtocolITerm2 indicates iTerm2 inline images protocol
	ProtocolITerm2
)

// DetectImageProtocol detects which terminal image protocol is supported.
func DetectImageProtocol() TerminalImageProtocol {
	return detectImageProtocol(os.Getenv("TERM"), os.Getenv("TERM_PROGRAM"))
}

func detectImageProtocol(term, termProgram string) TerminalImageProtocol {
	switch {
	case strings.Contains(term, "kitty"), termProgram == "ghostty":
		return ProtocolKitty
	case termProgram == "iTerm.app", termProgram == "WezTerm":
		return ProtocolITerm2
	}
	return ProtocolNone
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// InlineImage returns the escape sequence that draws an encoded image
// cellWidth columns wide, or "" when the terminal cannot show images.
func InlineImage(data []byte, protocol TerminalImageProtocol, cellWidth int) string {
	if len(data) == 0 {
		return ""
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	switch protocol {
	case ProtocolKitty:
		// f=100 only accepts PNG; other formats would print garbage.
		if !bytes.HasPrefix(data, pngMagic) {
			return ""
		}
		return kittyChunks(encoded, cellWidth)
	case ProtocolITerm2:
		return fmt.Sprintf("\x1b]1337;File=inline=1;width=%d;preserveAspectRatio=1:%s\x07", cellWidth, encoded)
	}
	return ""
}

func kittyChunks(encoded string, cellWidth int) string {
	const chunk = 4096
	var b strings.Builder
	for i := 0; i < len(encoded); i += chunk {
		end := i + chunk
		if end > len(encoded) {
			end = len(encoded)
		}
		more := 0
		if end < len(encoded) {
			more = 1
		}
		if i == 0 {
			fmt.Fprintf(&b, "\x1b_Ga=T,f=100,c=%d,m=%d;%s\x1b\\", cellWidth, more, encoded[i:end])
		} else {
			fmt.Fprintf(&b, "\x1b_Gm=%d;%s\x1b\\", more, encoded[i:end])
		}
	}
	return b.String()
}
