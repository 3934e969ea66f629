package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarksInternalCodeFatal(t *testing.T) {
	r := New(INT001, "unreachable state", nil)
	assert.True(t, r.Fatal)
}

func TestNewLeavesOtherCodesNonFatal(t *testing.T) {
	r := New(NAM001, "undeclared name 'x'", nil)
	assert.False(t, r.Fatal)
}

func TestReportErrorFormatsWithLocation(t *testing.T) {
	r := New(UNI001, "cannot unify i32 with bool", "1:2")
	assert.Equal(t, "1:2: UNI001: cannot unify i32 with bool", r.Error())
}

func TestReportErrorFormatsWithoutLocation(t *testing.T) {
	r := New(ARI001, "wrong arity", nil)
	assert.Equal(t, "ARI001: wrong arity", r.Error())
}

func TestReportImplementsError(t *testing.T) {
	var err error = New(TRA001, "no impl", nil)
	require.Error(t, err)
}

func TestWithNoteAppendsAndReturnsSelf(t *testing.T) {
	r := New(NAM002, "ambiguous lookup", "3:4")
	got := r.WithNote("also declared here", "1:1")
	assert.Same(t, r, got)
	require.Len(t, r.Notes, 1)
	assert.Equal(t, "also declared here", r.Notes[0].Message)
	assert.Equal(t, "1:1", r.Notes[0].Loc)
}

func TestWithNoteAccumulatesMultipleNotes(t *testing.T) {
	r := New(TRA002, "ambiguous impl", nil)
	r.WithNote("candidate one", nil).WithNote("candidate two", nil)
	assert.Len(t, r.Notes, 2)
}

func TestSinkStartsUnfailed(t *testing.T) {
	s := NewSink()
	assert.False(t, s.Failed())
	assert.Equal(t, 0, s.ExitCode())
	assert.Empty(t, s.Reports())
}

func TestSinkReportMarksFailed(t *testing.T) {
	s := NewSink()
	s.Report(New(NAM001, "undeclared", nil))
	assert.True(t, s.Failed())
	assert.Equal(t, 1, s.ExitCode())
	assert.Len(t, s.Reports(), 1)
}

func TestSinkReportsPreservesInsertionOrder(t *testing.T) {
	s := NewSink()
	first := New(NAM001, "first", nil)
	second := New(UNI001, "second", nil)
	s.Report(first)
	s.Report(second)
	require.Equal(t, []*Report{first, second}, s.Reports())
}

func TestReporterRenderPlainWritesCodeLocAndMessage(t *testing.T) {
	var buf bytes.Buffer
	rp := NewReporter(&buf)
	rp.Render(New(UNI001, "cannot unify i32 with bool", "2:5"))
	assert.Equal(t, "UNI001 2:5 cannot unify i32 with bool\n", buf.String())
}

func TestReporterRenderPlainIncludesNotes(t *testing.T) {
	var buf bytes.Buffer
	rp := NewReporter(&buf)
	r := New(NAM002, "ambiguous lookup", "3:4").WithNote("candidate A", "1:1")
	rp.Render(r)
	assert.Equal(t, "NAM002 3:4 ambiguous lookup\n  note: 1:1: candidate A\n", buf.String())
}

func TestReporterRenderAllWritesEveryReportInOrder(t *testing.T) {
	var buf bytes.Buffer
	rp := NewReporter(&buf)
	s := NewSink()
	s.Report(New(NAM001, "first", "1:1"))
	s.Report(New(UNI001, "second", "2:2"))

	rp.RenderAll(s)
	out := buf.String()
	assert.Equal(t, "NAM001 1:1 first\nUNI001 2:2 second\n", out)
}

func TestNewReporterDisablesColorForNonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	rp := NewReporter(&buf)
	assert.False(t, rp.color)
}
