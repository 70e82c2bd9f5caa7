package corpus

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
)

// Identifiers are random blobs of IDLen bytes expressed in hex and
// prefixed with a short string, one identifier per line:
//
//  id:0e1f461bbefa6e07cc2ef06b9ee1ed25101e24d4345af266ed2f5a58bcd26c5e
//  id:59245d7c68b28404e068b15cba430082549b845ab412c4c3b31fb8632fd794e1
//  id:8d4acbaaec5a4b00465fa6db04deeb7de8722ef2893a3c22096fafe060686c38
//
// A corpus is made of a common segment that can be shared between
// several outputs and a fresh segment unique to each output, so that
// two generated corpora overlap in exactly the common identifiers.

const (
	Prefix = "id:"
	IDLen  = 32
)

// Common generates the common segment
func Common(n int) (common []byte) {
	common = make([]byte, n*IDLen)
	if _, err := rand.Read(common); err != nil {
		log.Fatalf("could not generate %d identifiers for the common portion", n)
	}
	return
}

// Mix in from common and add n new fresh identifiers
func Mix(common []byte, n int) <-chan []byte {
	// setup the streams
	c1 := commons(common)
	c2 := freshes(n)
	return mixes(c1, c2)
}

// commons will write IDLen chunks from b to a channel and then close it
func commons(b []byte) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for i := 0; i < len(b)/IDLen; i++ {
			out <- b[i*IDLen : i*IDLen+IDLen]
		}
	}()
	return out
}

// freshes will write a total number of fresh identifiers to a channel
// and then close it
func freshes(total int) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for i := 0; i < total; i++ {
			b := make([]byte, IDLen)
			if _, err := rand.Read(b); err == nil {
				out <- b
			}
		}
	}()
	return out
}

// Format expresses a raw identifier in the corpus line format, the
// local prefix followed by the hex encoding. No line terminator is
// added, writers own the framing.
func Format(value []byte) []byte {
	out := make([]byte, len(Prefix)+hex.EncodedLen(len(value)))
	copy(out, Prefix)
	hex.Encode(out[len(Prefix):], value)
	return out
}

// mixes will read c1 & c2 to exhaustion, format each identifier,
// write the output to a channel and then close it
func mixes(c1, c2 <-chan []byte) <-chan []byte {
	var ws sync.WaitGroup
	out := make(chan []byte)
	// fixed to 2 here because this is the pattern
	ws.Add(2)
	// exhaust a channel
	f := func(c <-chan []byte) {
		defer ws.Done()
		for b := range c {
			out <- Format(b)
		}
	}
	// fan in c1 & c2
	go f(c1)
	go f(c2)
	// and wait so we can close the out channel
	go func() {
		ws.Wait()
		close(out)
	}()

	return out
}
