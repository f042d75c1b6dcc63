package random

import (
	"math/rand/v2"
)

// Deterministic source for reproducible test data
var PseudoRand = rand.New(rand.NewPCG(0xFF_FF_FF_FF, 0xAA_BB_CC_DD))
