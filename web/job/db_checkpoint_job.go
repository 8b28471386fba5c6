package job

import (
	"library-ui/database"
	"library-ui/logger"
	"library-ui/util/common"
)

type DbCheckpointJob struct{}

func NewDbCheckpointJob() *DbCheckpointJob {
	return new(DbCheckpointJob)
}

// Run is an interface method of the cron Job interface
func (j *DbCheckpointJob) Run() {
	defer common.Recover("db checkpoint job")
	if err := database.Checkpoint(); err != nil {
		logger.Warning("db checkpoint job err:", err)
	}
}
