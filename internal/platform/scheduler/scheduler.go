// Package scheduler はcronベースの定期実行を提供します。
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// MarketHoursSpec は平日の場中（9時〜15時台）に毎分発火するcron式です。
// 15:30より後の打ち切りはジョブ側で判定します。
const MarketHoursSpec = "* 9-15 * * 1-5"

// Scheduler はrobfig/cronの薄いラッパーです。ジョブのエラーを
// ログに落とし、停止時は実行中のジョブの完了を待ちます。
type Scheduler struct {
	cron *cron.Cron
}

// New は指定タイムゾーンで動くSchedulerを生成します。
// cron式の時刻判定はこのタイムゾーンで行われます。
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// AddJob はcron式でジョブを登録します。ジョブのエラーはここで
// ログに落とし、スケジューラ自体は止めません。
func (s *Scheduler) AddJob(spec, name string, job func(context.Context) error) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil {
			slog.Error("scheduled job failed", "job", name, "error", err)
		}
	})
}

// NextRun は登録済みエントリの次回実行時刻を返します。
func (s *Scheduler) NextRun(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

// Start はスケジューラを起動します。Entry.Nextが計算されるのは起動後です。
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop は新しい発火を止め、実行中のジョブが完了するまで待ちます。
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		slog.Warn("scheduler stop timed out; exiting with jobs still running")
	}
}
