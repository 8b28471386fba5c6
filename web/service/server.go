package service

import (
	"runtime"
	"time"

	"library-ui/config"
	"library-ui/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

var serverStart = time.Now()

// Status is the snapshot rendered on the status page.
type Status struct {
	T          time.Time `json:"-"`
	AppVersion string    `json:"appVersion"`
	AppUptime  uint64    `json:"appUptime"` // seconds
	Cpu        float64   `json:"cpu"`       // percent
	CpuCores   int       `json:"cpuCores"`
	Uptime     uint64    `json:"uptime"` // host uptime, seconds
	Mem        struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
}

type ServerService struct{}

// GetStatus gathers host metrics. Failures of individual probes degrade to
// zero values rather than failing the page.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		T:          time.Now(),
		AppVersion: config.GetVersion(),
		AppUptime:  uint64(time.Since(serverStart).Seconds()),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
		status.CpuCores = runtime.NumCPU()
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	return status
}
