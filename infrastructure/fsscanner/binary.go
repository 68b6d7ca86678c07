package fsscanner

import "os"

// textChars is the set of byte values that can appear as part of valid
// text, including 4-byte UTF-8 continuation bytes. Ported byte-for-byte
// from original_source/utils.py's _textchars table.
var textChars = buildTextChars()

func buildTextChars() [256]bool {
	var t [256]bool
	for _, b := range []byte{7, 8, 9, 10, 12, 13, 27} {
		t[b] = true
	}
	for b := 0x20; b < 0xC0; b++ {
		t[b] = true
	}
	for b := 0xC2; b < 0xF5; b++ {
		t[b] = true
	}
	return t
}

// isBinary reports whether path looks like a binary file: it reads the
// first 1KiB and flags the file as binary if any byte falls outside
// textChars. A 0-byte file is treated as binary (nothing to scan), and a
// file that can't be opened is conservatively treated as binary too.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 1024)
	n, _ := f.Read(buf)
	if n == 0 {
		return true
	}

	for _, b := range buf[:n] {
		if !textChars[b] {
			return true
		}
	}
	return false
}
