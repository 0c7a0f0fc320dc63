package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"

	"github.com/safing/portrng/log"
)

const hostStatTTL = 1 * time.Second

func registerHostMetrics() (err error) {
	// Register load average metrics.
	_, err = NewGauge("host_load_avg_1", nil, getFloat64HostStat(LoadAvg1), &Options{Name: "Host Load Avg 1min"})
	if err != nil {
		return err
	}
	_, err = NewGauge("host_load_avg_5", nil, getFloat64HostStat(LoadAvg5), &Options{Name: "Host Load Avg 5min"})
	if err != nil {
		return err
	}
	_, err = NewGauge("host_load_avg_15", nil, getFloat64HostStat(LoadAvg15), &Options{Name: "Host Load Avg 15min"})
	if err != nil {
		return err
	}

	// Register memory usage metrics.
	_, err = NewGauge("host_mem_total", nil, getUint64HostStat(MemTotal), &Options{Name: "Host Memory Total"})
	if err != nil {
		return err
	}
	_, err = NewGauge("host_mem_used", nil, getUint64HostStat(MemUsed), &Options{Name: "Host Memory Used"})
	if err != nil {
		return err
	}
	_, err = NewGauge("host_mem_available", nil, getUint64HostStat(MemAvailable), &Options{Name: "Host Memory Available"})
	if err != nil {
		return err
	}
	_, err = NewGauge("host_mem_used_percent", nil, getFloat64HostStat(MemUsedPercent), &Options{Name: "Host Memory Used in Percent"})
	if err != nil {
		return err
	}

	return nil
}

func getUint64HostStat(getStat func() (uint64, bool)) func() float64 {
	return func() float64 {
		val, _ := getStat()
		return float64(val)
	}
}

func getFloat64HostStat(getStat func() (float64, bool)) func() float64 {
	return func() float64 {
		val, _ := getStat()
		return val
	}
}

var (
	loadAvg        *load.AvgStat
	loadAvgExpires time.Time
	loadAvgLock    sync.Mutex
)

func getLoadAvg() *load.AvgStat {
	loadAvgLock.Lock()
	defer loadAvgLock.Unlock()

	// Return cache if still valid.
	if time.Now().Before(loadAvgExpires) {
		return loadAvg
	}

	// Refresh.
	var err error
	loadAvg, err = load.Avg()
	if err != nil {
		log.Warningf("metrics: failed to get load avg: %s", err)
		loadAvg = nil
	}
	loadAvgExpires = time.Now().Add(hostStatTTL)

	return loadAvg
}

// LoadAvg1 returns the 1 minute load average, normalized by the number of CPUs.
func LoadAvg1() (loadAvg float64, ok bool) {
	if stat := getLoadAvg(); stat != nil {
		return stat.Load1 / float64(runtime.NumCPU()), true
	}
	return 0, false
}

// LoadAvg5 returns the 5 minute load average, normalized by the number of CPUs.
func LoadAvg5() (loadAvg float64, ok bool) {
	if stat := getLoadAvg(); stat != nil {
		return stat.Load5 / float64(runtime.NumCPU()), true
	}
	return 0, false
}

// LoadAvg15 returns the 15 minute load average, normalized by the number of CPUs.
func LoadAvg15() (loadAvg float64, ok bool) {
	if stat := getLoadAvg(); stat != nil {
		return stat.Load15 / float64(runtime.NumCPU()), true
	}
	return 0, false
}

var (
	memStat        *mem.VirtualMemoryStat
	memStatExpires time.Time
	memStatLock    sync.Mutex
)

func getMemStat() *mem.VirtualMemoryStat {
	memStatLock.Lock()
	defer memStatLock.Unlock()

	// Return cache if still valid.
	if time.Now().Before(memStatExpires) {
		return memStat
	}

	// Refresh.
	var err error
	memStat, err = mem.VirtualMemory()
	if err != nil {
		log.Warningf("metrics: failed to get memory stats: %s", err)
		memStat = nil
	}
	memStatExpires = time.Now().Add(hostStatTTL)

	return memStat
}

// MemTotal returns the total amount of memory.
func MemTotal() (total uint64, ok bool) {
	if stat := getMemStat(); stat != nil {
		return stat.Total, true
	}
	return 0, false
}

// MemUsed returns the amount of used memory.
func MemUsed() (used uint64, ok bool) {
	if stat := getMemStat(); stat != nil {
		return stat.Used, true
	}
	return 0, false
}

// MemAvailable returns the amount of available memory.
func MemAvailable() (available uint64, ok bool) {
	if stat := getMemStat(); stat != nil {
		return stat.Available, true
	}
	return 0, false
}

// MemUsedPercent returns the percentage of used memory.
func MemUsedPercent() (usedPercent float64, ok bool) {
	if stat := getMemStat(); stat != nil {
		return stat.UsedPercent, true
	}
	return 0, false
}
