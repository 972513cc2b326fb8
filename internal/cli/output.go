package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Output печатает сущности Relay: таблицами для глаз, JSON'ом для скриптов.
// Данные идут в stdout, сообщения о результате — в stderr, чтобы таблицы
// и JSON можно было pipe'ить дальше.
type Output struct {
	jsonMode bool
	w        io.Writer
	errW     io.Writer
}

// NewOutput создаёт Output. Если jsonMode=true, данные выводятся в JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{
		jsonMode: jsonMode,
		w:        os.Stdout,
		errW:     os.Stderr,
	}
}

// Job выводит запрошенный job.
func (o *Output) Job(job *JobResponse) {
	if o.jsonMode {
		o.json(job)
		return
	}
	o.table(
		[]string{"ID", "CUSTOMER", "CONFIG", "STATUS"},
		[][]string{{job.ID, job.CustomerID, job.ConfigName, job.Status}},
	)
}

// Configs выводит список конфигураций с количеством правил трансформации.
func (o *Output) Configs(configs []ConfigResponse) {
	if o.jsonMode {
		o.json(configs)
		return
	}
	rows := make([][]string, len(configs))
	for i, c := range configs {
		rows[i] = []string{c.CustomerID, c.Name, ruleCount(c.Spec), c.UpdatedAt}
	}
	o.table([]string{"CUSTOMER", "NAME", "RULES", "UPDATED_AT"}, rows)
}

// Config выводит одну конфигурацию. Spec — вложенная структура,
// таблица здесь бесполезна, поэтому всегда JSON.
func (o *Output) Config(cfg *ConfigResponse) {
	o.json(cfg)
}

// Schedules выводит список schedules.
func (o *Output) Schedules(schedules []ScheduleResponse) {
	if o.jsonMode {
		o.json(schedules)
		return
	}
	rows := make([][]string, len(schedules))
	for i, s := range schedules {
		rows[i] = []string{
			s.ID, s.CustomerID, s.ConfigName,
			trigger(&s), strconv.FormatBool(s.Enabled), s.NextDueAt,
		}
	}
	o.table([]string{"ID", "CUSTOMER", "CONFIG", "TRIGGER", "ENABLED", "NEXT_DUE"}, rows)
}

// Schedule выводит один schedule.
func (o *Output) Schedule(s *ScheduleResponse) {
	if o.jsonMode {
		o.json(s)
		return
	}
	o.table(
		[]string{"ID", "CUSTOMER", "CONFIG", "TRIGGER", "TIMEZONE", "ENABLED", "NEXT_DUE"},
		[][]string{{
			s.ID, s.CustomerID, s.ConfigName,
			trigger(s), s.Timezone, strconv.FormatBool(s.Enabled), s.NextDueAt,
		}},
	)
}

// Success выводит сообщение об успехе в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.errW, msg)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.errW, "Error: "+msg)
}

func (o *Output) table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}

func (o *Output) json(v any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// trigger описывает расписание одной строкой: cron-выражение или интервал.
func trigger(s *ScheduleResponse) string {
	if s.CronExpr != "" {
		return s.CronExpr
	}
	if s.IntervalSec > 0 {
		return fmt.Sprintf("every %ds", s.IntervalSec)
	}
	return "-"
}

// ruleCount считает правила в сыром spec'е конфигурации.
func ruleCount(spec map[string]any) string {
	rules, ok := spec["rules"].([]any)
	if !ok {
		return "0"
	}
	return strconv.Itoa(len(rules))
}
