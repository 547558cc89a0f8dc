package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(charts []Chart) []string {
	out := make([]string, 0, len(charts))
	for _, c := range charts {
		out = append(out, c.Key)
	}
	return out
}

func TestChartSet_Ordered(t *testing.T) {
	var cs ChartSet
	cs.Add("custom_b", "b")
	cs.Add("history", "h")
	cs.Add("custom_a", "a")
	cs.Add("pie", "p")
	cs.Add("mc", nil)

	assert.Equal(t, 4, cs.Len())
	assert.Equal(t, []string{"pie", "history", "custom_b", "custom_a"}, keys(cs.Ordered(DefaultChartOrder)))
	assert.Equal(t, []string{"custom_b", "history", "custom_a", "pie"}, keys(cs.Ordered(nil)))
}

func TestChartSet_AddReplaces(t *testing.T) {
	var cs ChartSet
	cs.Add("pie", "old")
	cs.Add("history", "h")
	cs.Add("pie", "new")

	assert.Len(t, cs, 2)
	assert.Equal(t, "pie", cs[0].Key)
	assert.Equal(t, "new", cs[0].Handle)
}

func TestBuildError(t *testing.T) {
	cause := errors.New("font missing")
	err := error(buildError(StageLayout, cause))

	assert.Equal(t, "report: layout failed: font missing", err.Error())
	assert.ErrorIs(t, err, ErrBuild)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConfig)
}

func TestResult_Partial(t *testing.T) {
	res := &Result{Charts: []ChartOutcome{
		{Key: "pie", Status: ChartEmbedded},
		{Key: "mc", Status: ChartFailed, Reason: "timeout"},
	}}
	assert.True(t, res.Partial())
	assert.Equal(t, []ChartOutcome{{Key: "mc", Status: ChartFailed, Reason: "timeout"}}, res.FailedCharts())

	assert.False(t, (&Result{}).Partial())
}

func TestResult_Status(t *testing.T) {
	assert.Equal(t, "ok", (&Result{}).Status())
	assert.Equal(t, "empty", (&Result{Empty: true}).Status())
	assert.Equal(t, "partial", (&Result{Charts: []ChartOutcome{{Key: "pie", Status: ChartFailed}}}).Status())
}
