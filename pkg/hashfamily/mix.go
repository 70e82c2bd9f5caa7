package hashfamily

import "math/bits"

// splitmix64 runs one round of the splitmix64 avalanche mixer over x.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// fold64 combines a base hash h with a per function seed before a full
// avalanche round, so that the same base hash mixed with distinct seeds
// produces statistically independent streams.
func fold64(h, seed uint64) uint64 {
	return splitmix64(h ^ (seed + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)))
}

// word truncates a 64 bit hash to the platform word. On 32 bit
// platforms the upper half is folded in rather than discarded.
func word(x uint64) uint {
	if bits.UintSize == 32 {
		return uint(x ^ (x >> 32))
	}

	return uint(x)
}
