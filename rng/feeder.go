package rng

// SupplyEntropy supplies data to the global generator's pools. Data is dropped if the feeder is congested.
func SupplyEntropy(data []byte) {
	if !feeder.Supply(data) {
		droppedEntropyCounter.Inc()
	}
}

// SupplyEntropyAsInt supplies an integer to the global generator's pools.
func SupplyEntropyAsInt(n int64) {
	if !feeder.SupplyInt64(n) {
		droppedEntropyCounter.Inc()
	}
}
