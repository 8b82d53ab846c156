package worker

import (
	"github.com/spec-kit/recruiting-pipeline/internal/service"
)

// StartActivityWorker registers audit trail handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
