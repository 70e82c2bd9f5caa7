package util

import (
	"bufio"
	"io"
	"log"
)

// SafeReadLine blocks until a whole line can be read from r and
// returns it without the trailing \n.
func SafeReadLine(r *bufio.Reader) (line []byte, err error) {
	line, err = r.ReadBytes('\n')
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	return
}

// Exhaust reads up to n identifiers from r, one per line, and writes
// them to the returned channel. The channel is closed once n
// identifiers were read or r ran dry. Blank lines are skipped.
func Exhaust(n int64, r io.Reader) <-chan []byte {
	var identifiers = make(chan []byte)
	src := bufio.NewReader(r)
	go func() {
		defer close(identifiers)
		for i := int64(0); i < n; i++ {
			identifier, err := SafeReadLine(src)
			if len(identifier) != 0 {
				identifiers <- identifier
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("error reading identifiers: %v", err)
				}
				return
			}
		}
	}()

	return identifiers
}
