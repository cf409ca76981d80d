package health

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	db *pgxpool.Pool

	mu       sync.Mutex
	emailJob JobStatus
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	EmailJob JobStatus      `json:"email_job"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// JobStatus is the recorded outcome of the last daily email run. Written by
// the scheduler goroutine and read by health handlers, hence the mutex on
// the checker.
type JobStatus struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run,omitempty"`
}

// SystemHealth extends the basic check with host resource usage.
type SystemHealth struct {
	HealthStatus
	CPUPercent  float64 `json:"cpu_percent"`
	MemoryUsed  uint64  `json:"memory_used_bytes"`
	MemoryTotal uint64  `json:"memory_total_bytes"`
	DiskPercent float64 `json:"disk_percent"`
}

func NewHealthChecker(db *pgxpool.Pool) *HealthChecker {
	return &HealthChecker{
		db:       db,
		emailJob: JobStatus{Status: "never_run"},
	}
}

// RecordEmailJob stores the outcome of a daily email run.
func (h *HealthChecker) RecordEmailJob(ok bool, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	status := "ok"
	if !ok {
		status = "failed"
	}
	h.emailJob = JobStatus{Status: status, Message: message, LastRun: time.Now()}
}

// EmailJobStatus returns a copy of the last recorded email run.
func (h *HealthChecker) EmailJobStatus() JobStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.emailJob
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		EmailJob: h.EmailJobStatus(),
	}
}

// CheckDetailed adds host CPU, memory and disk usage to the basic check.
func (h *HealthChecker) CheckDetailed() SystemHealth {
	result := SystemHealth{HealthStatus: h.CheckBasic()}

	if cpuPercents, err := cpu.Percent(time.Second, false); err == nil && len(cpuPercents) > 0 {
		result.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		result.MemoryUsed = memStats.Used
		result.MemoryTotal = memStats.Total
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		result.DiskPercent = diskStats.UsedPercent
	}
	return result
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
