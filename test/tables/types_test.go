// black box testing of the full table stack
package tables_test

type test_size struct {
	scenario                      string
	commonLen, tableLen, probeLen int
}

// test scenarios
// the common part will be subtracted from the table &
// the probe len, so for instance
//
//  100 common, 100 table will result in the table len being 100 and only
//  composed of the common part
//
var test_sizes = []test_size{
	{"table100probe200", 100, 100, 200},
	{"emptyTable", 0, 0, 1000},
	{"emptyProbe", 0, 1000, 0},
	{"sameSize", 100, 100, 100},
	{"smallSize", 100, 10000, 1000},
	{"mediumSize", 1000, 100000, 10000},
}
