package apihandlers

import (
	"math/rand"
	"time"
)

// randomWait makes failed auth attempts slower and less uniform, so response
// timing reveals little about which check rejected the request
func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}
