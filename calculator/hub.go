package calculator

import (
	"pipeheat/model"
)

type CalcHub struct {
	// 计算停止
	Stop chan struct{}
	// 每个时间步的推送数据
	PeriodCalcResult chan []model.Snapshot
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		Stop:             make(chan struct{}),
		PeriodCalcResult: make(chan []model.Snapshot, 10),
	}
}

// PushSignal 推送一个时间步的结果，已停止时丢弃
func (ch *CalcHub) PushSignal(snapshots []model.Snapshot) bool {
	select {
	case <-ch.Stop:
		return false
	case ch.PeriodCalcResult <- snapshots:
		return true
	}
}

func (ch *CalcHub) StopSignal() {
	select {
	case <-ch.Stop:
	default:
		close(ch.Stop)
	}
}

func (ch *CalcHub) Stopped() bool {
	select {
	case <-ch.Stop:
		return true
	default:
		return false
	}
}

// Finish 计算结束，由推送方调用一次
func (ch *CalcHub) Finish() {
	close(ch.PeriodCalcResult)
}
