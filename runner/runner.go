package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"pipeheat/calculator"
	"pipeheat/model"
	"pipeheat/weather"
)

type Config struct {
	Workers          int
	TimeStepsPerHour int
	Iterations       int // 每个时间步的外部迭代次数，大于 1 时后续迭代为同一时刻的重复求解
	PressureResolved bool
	SnapshotLength   int // 推送的土壤截面轴向下标
}

func DefaultConfig() Config {
	return Config{Workers: 4, TimeStepsPerHour: 6, Iterations: 1}
}

// LoadConfig 读取 [runner] 段
func LoadConfig(file *ini.File) Config {
	section := file.Section("runner")
	def := DefaultConfig()
	return Config{
		Workers:          section.Key("Workers").MustInt(def.Workers),
		TimeStepsPerHour: section.Key("TimeStepsPerHour").MustInt(def.TimeStepsPerHour),
		Iterations:       section.Key("Iterations").MustInt(def.Iterations),
		PressureResolved: section.Key("PressureResolved").MustBool(false),
		SnapshotLength:   section.Key("SnapshotLength").MustInt(0),
	}
}

// Runner 外部调度：逐时读取边界条件，按时间步驱动所有管道
type Runner struct {
	cfg     Config
	pipes   []calculator.Calculator
	series  *weather.Series
	sink    calculator.Sink
	hub     *calculator.CalcHub
	outlets []model.FlowNode
}

// New 校验全部配置，错误一次性返回
func New(cfg Config, solver calculator.Config, pipeCfgs []model.PipeConfig, props calculator.FluidProperties,
	series *weather.Series, sink calculator.Sink) (*Runner, error) {
	var errs []error
	if cfg.TimeStepsPerHour < 1 {
		errs = append(errs, fmt.Errorf("runner: TimeStepsPerHour must be at least 1, got %d", cfg.TimeStepsPerHour))
	}
	if cfg.Iterations < 1 {
		errs = append(errs, fmt.Errorf("runner: Iterations must be at least 1, got %d", cfg.Iterations))
	}
	if err := calculator.ValidatePipes(pipeCfgs, solver); err != nil {
		errs = append(errs, err)
	}
	for _, pc := range pipeCfgs {
		env := pc.Environment
		if env.Kind != "schedule" {
			continue
		}
		for _, name := range []string{env.TemperatureSchedule, env.VelocitySchedule} {
			if name != "" && !series.HasSchedule(name) {
				errs = append(errs, fmt.Errorf("pipe %q: schedule %q not found in weather series", pc.Name, name))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	pipes, err := calculator.NewPipes(pipeCfgs, props, solver)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:     cfg,
		series:  series,
		sink:    sink,
		outlets: make([]model.FlowNode, len(pipes)),
	}
	for _, p := range pipes {
		r.pipes = append(r.pipes, p)
	}
	return r, nil
}

func (r *Runner) SetHub(hub *calculator.CalcHub) {
	r.hub = hub
}

// Outlet 第 i 根管道的出口节点
func (r *Runner) Outlet(i int) model.FlowNode {
	return r.outlets[i]
}

func (r *Runner) Run(ctx context.Context) error {
	exec := calculator.NewExecutor(r.cfg.Workers)
	exec.Run()
	defer exec.Stop()

	for _, p := range r.pipes {
		p.BeginEnvironment(1)
	}

	n := r.cfg.TimeStepsPerHour
	stepHours := 1.0 / float64(n)
	log.WithFields(log.Fields{
		"pipes":   len(r.pipes),
		"hours":   r.series.Hours(),
		"steps":   n,
		"workers": r.cfg.Workers,
	}).Info("run started")

	for hour := 0; hour < r.series.Hours(); hour++ {
		row := r.series.Row(hour)
		cond := r.series.At(hour)
		inlet := model.FlowNode{
			Temp:                 row.InletTemp,
			TempMin:              row.InletTemp,
			TempMax:              row.InletTemp,
			MassFlowRate:         row.MassFlowRate,
			MassFlowRateMax:      row.MassFlowRate,
			MassFlowRateMaxAvail: row.MassFlowRate,
		}

		for ts := 1; ts <= n; ts++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if r.hub != nil && r.hub.Stopped() {
				log.Info("run stopped")
				return nil
			}

			var reports []calculator.Report
			for it := 0; it < r.cfg.Iterations; it++ {
				inputs := make([]calculator.StepInput, len(r.pipes))
				for i := range r.pipes {
					inputs[i] = calculator.StepInput{
						Inlet:            inlet,
						Outlet:           &r.outlets[i],
						PressureResolved: r.cfg.PressureResolved,
						Day:              hour/24 + 1,
						Hour:             hour%24 + 1,
						TimeStep:         ts,
						TimeStepHours:    stepHours,
						ElapsedSeconds:   stepHours * model.SecondsInHour,
						FirstIteration:   it == 0,
					}
				}
				var cost time.Duration
				reports, cost = exec.DispatchTask(r.pipes, inputs, cond)
				log.WithFields(log.Fields{"hour": hour, "step": ts, "iteration": it, "cost": cost}).Debug("time step")
			}

			// 只记录最后一次迭代的结果
			for _, rep := range reports {
				if err := r.sink.Record(rep); err != nil {
					return fmt.Errorf("record %s: %w", rep.Pipe, err)
				}
			}
			if r.hub != nil {
				snapshots := make([]model.Snapshot, len(r.pipes))
				for i, p := range r.pipes {
					snapshots[i] = p.Snapshot(r.cfg.SnapshotLength)
				}
				r.hub.PushSignal(snapshots)
			}
		}
	}
	log.Info("run finished")
	return nil
}
