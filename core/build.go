package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/huangsam/rvss/internal/contract"
	"github.com/huangsam/rvss/internal/outwriter"
	"github.com/huangsam/rvss/schema"
)

// askOne is swapped out in tests.
var askOne = survey.AskOne

// ErrBuildCancelled is returned when the user interrupts the interactive builder.
var ErrBuildCancelled = errors.New("build cancelled")

// ExecuteBuild walks the user through every metric of a system and scores the result.
// An optional second argument pre-fills the answers from an existing vector.
func ExecuteBuild(_ context.Context, cfg *contract.Config, reg *Registry, store contract.HistoryStore, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("a system name or prefix and an optional starting vector are required")
	}
	start := time.Now()

	sys, err := reg.System(args[0])
	if err != nil {
		return err
	}
	e := NewEntity(sys)
	if len(args) == 2 {
		if err := e.FromVector(args[1]); err != nil {
			return err
		}
	}

	if err := promptEntity(e); err != nil {
		return err
	}

	vector, err := e.ToVector(serializeOptions(cfg)...)
	if err != nil {
		return err
	}
	results := []schema.ScoreResult{reg.Score(vector, cfg.Explain)}
	recordRun(cfg, store, "build", start, results)
	return outwriter.NewOutWriter().WriteScores(results, cfg, time.Since(start))
}

// promptEntity asks for every metric of the entity's system, group by group.
// Groups without mandatory metrics are only visited after a confirmation.
func promptEntity(e *Entity) error {
	sch := e.System().Schema()
	for _, group := range sch.Groups() {
		var metrics []schema.Metric
		mandatory := false
		for _, m := range sch.Metrics() {
			if m.Group == group {
				metrics = append(metrics, m)
				mandatory = mandatory || m.Required()
			}
		}

		if !mandatory {
			include := false
			prompt := &survey.Confirm{Message: fmt.Sprintf("Set %s metrics?", group), Default: false}
			if err := ask(prompt, &include); err != nil {
				return err
			}
			if !include {
				continue
			}
		}

		for _, m := range metrics {
			token, err := promptMetric(e, m)
			if err != nil {
				return err
			}
			if err := e.Set(m.Name, token); err != nil {
				return err
			}
		}
	}
	return nil
}

// promptMetric asks for the value of one metric and returns its token.
func promptMetric(e *Entity, m schema.Metric) (string, error) {
	options := make([]string, len(m.Values))
	current, ok := e.Get(m.Name)
	if !ok {
		current = m.Default
	}

	prompt := &survey.Select{
		Message:  fmt.Sprintf("%s (%s):", m.Title, m.Code),
		Options:  options,
		PageSize: 10,
	}
	for i, v := range m.Values {
		options[i] = valueOption(v)
		if v.Token == current {
			prompt.Default = options[i]
		}
	}

	var answer string
	if err := ask(prompt, &answer); err != nil {
		return "", err
	}
	token, _, _ := strings.Cut(answer, " - ")
	return token, nil
}

func valueOption(v schema.Value) string {
	return v.Token + " - " + v.Title
}

func ask(prompt survey.Prompt, response any) error {
	if err := askOne(prompt, response); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrBuildCancelled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
