package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkpack/checkpack/internal/expect"
)

func sampleOutcomes() []expect.Outcome {
	return []expect.Outcome{
		{Expectation: &expect.Expectation{Description: "file build/out/app.txt"}},
		{
			Expectation: &expect.Expectation{Description: "archive build/dist/app.zip is complete"},
			Err:         errors.New("expected archive build/dist/app.zip to contain [\"**/t*st\"]: no descendant path matches [\"**/t*st\"]"),
		},
		{Expectation: &expect.Expectation{Description: "entry resources/test in archive build/dist/app.zip"}},
	}
}

func TestNew_CountsOutcomes(t *testing.T) {
	r := New("my-app", sampleOutcomes())

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, "my-app", r.Unit)
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 1, r.Failed)
	assert.False(t, r.Pass())
	require.Len(t, r.Results, 3)
	assert.True(t, r.Results[0].Pass)
	assert.False(t, r.Results[1].Pass)
	assert.NotEmpty(t, r.Results[1].Cause)
}

func TestNew_AllPassing(t *testing.T) {
	r := New("my-app", []expect.Outcome{
		{Expectation: &expect.Expectation{Description: "anything"}},
	})
	assert.True(t, r.Pass())
	assert.Equal(t, 0, r.Failed)
}

func TestRender_Golden(t *testing.T) {
	r := New("my-app", sampleOutcomes())
	r.RunID = "00000000-0000-0000-0000-000000000000" // fixed for determinism

	var text bytes.Buffer
	r.Render(&text)

	var asJSON bytes.Buffer
	require.NoError(t, r.RenderJSON(&asJSON))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_text", text.Bytes())
	g.Assert(t, "report_json", asJSON.Bytes())
}
