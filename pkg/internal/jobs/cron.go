// Package jobs 负责注册与实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"errors"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/log"
	"github.com/yeisme/csvvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 upload.sweep_cron 清理上传目录中超过 upload.temp_ttl 的临时文件（sweep_cron 为空时不注册）
func RegisterCronJobs(ctx context.Context, sched *scheduler.Scheduler, svc *service.FileService, upload configs.UploadConfig) error {
	if sched == nil {
		return errors.New("scheduler is nil")
	}

	if svc == nil {
		return errors.New("file service is nil")
	}

	if upload.SweepCron == "" {
		return nil
	}

	return sched.AddCron(ctx, JobSweepTempUploads, upload.SweepCron, func(ctx context.Context) error {
		return runSweepTemp(ctx, svc, upload)
	})
}

// runSweepTemp 清理中断的上传留下的临时文件.
func runSweepTemp(ctx context.Context, svc *service.FileService, upload configs.UploadConfig) error {
	l := log.Logger().With().Str("job", JobSweepTempUploads).Logger()

	n, err := svc.SweepTemp(ctx, upload.TempTTL)
	if err != nil {
		return err
	}

	l.Debug().Int("removed", n).Dur("older_than", upload.TempTTL).Msg("temp upload sweep done")

	return nil
}
