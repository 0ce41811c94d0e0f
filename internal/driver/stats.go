package driver

import "github.com/th3flyboy/llvm-mirror/internal/types"

func statsToPayload(s types.Stats) cachedStats {
	return cachedStats{
		Nodes:     s.Nodes,
		Integers:  s.Integers,
		Functions: s.Functions,
		Structs:   s.Structs,
		Arrays:    s.Arrays,
		Vectors:   s.Vectors,
		Pointers:  s.Pointers,
		Opaques:   s.Opaques,
	}
}

func payloadToStats(s cachedStats) types.Stats {
	return types.Stats{
		Nodes:     s.Nodes,
		Integers:  s.Integers,
		Functions: s.Functions,
		Structs:   s.Structs,
		Arrays:    s.Arrays,
		Vectors:   s.Vectors,
		Pointers:  s.Pointers,
		Opaques:   s.Opaques,
	}
}
