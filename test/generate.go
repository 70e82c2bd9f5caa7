package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/optable/multiprobe/test/corpus"
)

// generate writes two identifier corpora that overlap in exactly the
// common portion: a table file meant to be loaded into a hash table
// and a probe file meant to be looked up against it, so that probing
// hits exactly the common identifiers. One identifier per line:
//
//  id:0e1f461bbefa6e07cc2ef06b9ee1ed25101e24d4345af266ed2f5a58bcd26c5e
//  id:59245d7c68b28404e068b15cba430082549b845ab412c4c3b31fb8632fd794e1
//  id:8d4acbaaec5a4b00465fa6db04deeb7de8722ef2893a3c22096fafe060686c38

const (
	usage = `%s cardinality_of_table cardinality_of_probes number_in_common (min(t,p)/10) table_output_file (%s) probe_output_file (%s)

 the default size of the common portion is min(cardinality_of_table, cardinality_of_probes) / 10

example:
 %s 100000 1000000
`
	defaultTableCardinality = 100000
	defaultProbeCardinality = 1000000
	defaultTableOutput      = "table-ids.txt"
	defaultProbeOutput      = "probe-ids.txt"
)

type config struct {
	tableCardinality int
	probeCardinality int
	common           int
	tableOutput      string
	probeOutput      string
}

func formatUsage() string {
	name := os.Args[0]
	return fmt.Sprintf(usage, name, defaultTableOutput, defaultProbeOutput, name)
}

// global conf
var conf config

func formatArgs() string {
	return fmt.Sprintf("generating %d for the table and %d for the probes with %d in common to %s and %s",
		conf.tableCardinality, conf.probeCardinality, conf.common, conf.tableOutput, conf.probeOutput)
}

// min
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func init() {
	// we have default values for everything
	if len(os.Args) > 1 {
		if t, err := strconv.Atoi(os.Args[1]); err == nil {
			conf.tableCardinality = t
		} else {
			log.Fatal(err)
		}
	} else {
		conf.tableCardinality = defaultTableCardinality
	}
	if len(os.Args) > 2 {
		if p, err := strconv.Atoi(os.Args[2]); err == nil {
			conf.probeCardinality = p
		} else {
			log.Fatal(err)
		}
	} else {
		conf.probeCardinality = defaultProbeCardinality
	}
	// common
	if len(os.Args) > 3 {
		if common, err := strconv.Atoi(os.Args[3]); err == nil {
			conf.common = common
		} else {
			log.Fatal(err)
		}
	} else {
		conf.common = min(conf.tableCardinality, conf.probeCardinality) / 10
	}
	// tableOutput
	if len(os.Args) > 4 {
		conf.tableOutput = os.Args[4]
	} else {
		conf.tableOutput = defaultTableOutput
	}
	// probeOutput
	if len(os.Args) > 5 {
		conf.probeOutput = os.Args[5]
	} else {
		conf.probeOutput = defaultProbeOutput
	}
}

func main() {
	var ws sync.WaitGroup
	println(formatUsage())
	// make the common part
	common := corpus.Common(conf.common)
	println(formatArgs())
	// do both corpora in parallel
	ws.Add(2)
	go output(conf.tableOutput, common, conf.tableCardinality-conf.common, &ws)
	go output(conf.probeOutput, common, conf.probeCardinality-conf.common, &ws)
	ws.Wait()
}

func output(filename string, common []byte, n int, ws *sync.WaitGroup) {
	defer ws.Done()
	if f, err := os.Create(filename); err == nil {
		defer f.Close()
		// exhaust out
		for identifier := range corpus.Mix(common, n) {
			// add \n
			out := append(identifier, "\n"...)
			// and write it
			if _, err := f.Write(out); err != nil {
				log.Fatal(err)
			}
		}
	} else {
		log.Fatal(err)
	}
}
