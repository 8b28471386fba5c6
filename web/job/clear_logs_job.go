package job

import (
	"os"

	"library-ui/logger"
	"library-ui/util/common"
)

type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run is an interface method of the cron Job interface
func (j *ClearLogsJob) Run() {
	defer common.Recover("clear logs job")
	if err := os.Truncate(logger.GetLogPath(), 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
